package main

import (
	"encoding/json"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/acceptor/pkg/domain"
)

// stdoutIsTerminal reports whether stdout is attached to a terminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// writeGraph encodes g as JSON, indented when pretty is set.
func writeGraph(w io.Writer, g *domain.Graph, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(g)
}
