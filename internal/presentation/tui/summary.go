package tui

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Summary describes a finished build.
type Summary struct {
	Topology domain.Topology
	Input    string
	Graph    *domain.Graph
	Elapsed  time.Duration
}

// PrintSummary writes a short coloured summary of a build to out.
func PrintSummary(out *termenv.Output, s Summary) {
	accent := out.String(string(s.Topology)).Foreground(out.Color("#818cf8")).Bold()
	dim := func(v string) termenv.Style {
		return out.String(v).Foreground(out.Color("#9ca3af"))
	}

	fmt.Fprintf(out, "%s %q\n", accent, s.Input)
	fmt.Fprintf(out, "  %s %d\n", dim("states"), s.Graph.NumStates)
	fmt.Fprintf(out, "  %s  %d\n", dim("edges"), len(s.Graph.Edges))
	fmt.Fprintf(out, "  %s   %s\n", dim("time"), s.Elapsed.Round(time.Microsecond))

	if dangling := Dangling(s.Graph); len(dangling) > 0 {
		warn := out.String(fmt.Sprintf("  %d dangling states: %v", len(dangling), dangling)).
			Foreground(out.Color("#fb7185"))
		fmt.Fprintln(out, warn)
	}
}
