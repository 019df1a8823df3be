package runtime

import (
	"github.com/aretw0/acceptor/pkg/domain"
)

// MergeFinalStates collapses a set of final states into one new final state.
//
// Every edge ending in a final state is duplicated with the same origin and
// label and retargeted to the new state. The original edges stay in place.
// If finals is already exactly {NumStates-1} nothing changes.
func MergeFinalStates(g *domain.Graph, finals []int) {
	if len(finals) == 1 && finals[0] == g.NumStates-1 {
		return
	}

	final := g.AddState()
	existing := len(g.Edges)
	seen := make(map[int]bool, len(finals))

	for _, f := range finals {
		if seen[f] {
			continue
		}
		seen[f] = true
		for i := 0; i < existing; i++ {
			e := g.Edges[i]
			if e.To == f {
				g.AddEdge(e.From, final, e.Label, domain.ArcWeight, e.Pos)
			}
		}
	}
}
