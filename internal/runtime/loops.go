package runtime

import (
	"github.com/aretw0/acceptor/pkg/domain"
)

// AddLoops adds a zero-cost self-loop to every state in [first, last).
//
// The loop copies label and position tag from the first edge entering the
// state whose label is not epsilon. A state without such an edge gets an
// unset label; state tying rejects those loops.
func AddLoops(g *domain.Graph, first, last int) {
	if first < 0 {
		first = 0
	}
	if last > g.NumStates {
		last = g.NumStates
	}

	// index of the first non-epsilon edge entering each state
	entry := make(map[int]int, last-first)
	for i, e := range g.Edges {
		if e.To < first || e.To >= last || e.Label.Kind == domain.KindEpsilon {
			continue
		}
		if _, seen := entry[e.To]; !seen {
			entry[e.To] = i
		}
	}

	for s := first; s < last; s++ {
		var label domain.Label
		var pos domain.PositionTag
		if i, ok := entry[s]; ok {
			label = g.Edges[i].Label
			pos = g.Edges[i].Pos
		}
		g.AddEdge(s, s, label, 0, pos)
	}
}
