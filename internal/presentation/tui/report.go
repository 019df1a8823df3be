package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Report renders a markdown description of an acceptor graph: its size,
// the label kinds it carries and any state other than the final one that
// has no way forward.
func Report(title string, g *domain.Graph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	loops := 0
	kinds := make(map[domain.LabelKind]int)
	for _, e := range g.Edges {
		if e.IsLoop() {
			loops++
		}
		kinds[e.Label.Kind]++
	}

	sb.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| States | %d |\n", g.NumStates)
	fmt.Fprintf(&sb, "| Edges | %d |\n", len(g.Edges))
	fmt.Fprintf(&sb, "| Self-loops | %d |\n", loops)
	fmt.Fprintf(&sb, "| Final state | %d |\n", g.FinalState())

	if len(kinds) > 0 {
		sb.WriteString("\n## Labels\n\n| Kind | Edges |\n|---|---|\n")
		ordered := make([]domain.LabelKind, 0, len(kinds))
		for k := range kinds {
			ordered = append(ordered, k)
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
		for _, k := range ordered {
			fmt.Fprintf(&sb, "| %s | %d |\n", k, kinds[k])
		}
	}

	if dangling := Dangling(g); len(dangling) > 0 {
		sb.WriteString("\n## Dangling states\n\n")
		for _, s := range dangling {
			fmt.Fprintf(&sb, "- state %d has no outgoing edge\n", s)
		}
	}
	return sb.String()
}

// Dangling returns the sinks of g other than its final state.
func Dangling(g *domain.Graph) []int {
	var out []int
	for _, s := range g.Sinks() {
		if s != g.FinalState() {
			out = append(out, s)
		}
	}
	return out
}
