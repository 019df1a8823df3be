/*
Package ports defines the collaborator interfaces of the acceptor builder.

The construction stages themselves are pure; everything they need from the
outside world (pronunciations, the state-tying table) comes through these
interfaces, so callers control the lifetime of lexicons and tables instead of
relying on process-wide caches.

# Key Interfaces

  - Lexicon: word → pronunciation variants (memory, Redis or file backed).
  - StateTying: canonical allophone string → tied-state id.
  - Builder: the engine as seen by the HTTP and MCP adapters.
*/
package ports
