/*
Package domain contains the core types shared by every acceptor builder.

It is kept free of I/O. States are plain integers in [0, NumStates) referenced
only through edges; renumbering exchanges node ids with a scan over the edge list.

# Key Entities

  - Graph: the acceptor, a state count plus an ordered edge list.
  - Edge: (from, to, label, weight, position tag). Weight is a cost in -log space.
  - Label: a tagged variant whose kind changes as the HMM pipeline refines it
    (word → phoneme → triphone → allophone state → tied state).
  - Request: the topology choice, the input sequence and its parameters.
  - LifecycleHooks: callbacks fired after each stage and each build.
*/
package domain
