package runtime

import (
	"github.com/aretw0/acceptor/pkg/domain"
)

// LemmaAcceptor lays out one word edge per word, with parallel silence and
// epsilon edges before the first word and after every word.
//
// Word k spans states 2k+1 → 2k+2, so the graph has 2n+2 states and its
// final state is 2n+1.
func LemmaAcceptor(g *domain.Graph, words []string) {
	placeholders := []domain.Label{domain.Silence(), domain.Epsilon()}

	g.Edges = g.Edges[:0]
	g.NumStates = 0

	for k, w := range words {
		start := 2*k + 1
		end := start + 1
		g.AddEdge(start, end, domain.Word(w), 0, domain.PosInterior)
		for _, p := range placeholders {
			if k == 0 {
				g.AddEdge(start-1, end-1, p, 0, domain.PosInterior)
				g.NumStates++
			}
			g.AddEdge(start+1, end+1, p, 0, domain.PosInterior)
			g.NumStates++
		}
	}
}
