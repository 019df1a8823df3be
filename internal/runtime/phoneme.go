package runtime

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/acceptor/pkg/domain"
)

// PhonemeAcceptor replaces every word edge with its pronunciation variants and
// splits each variant into a chain of single-phoneme edges.
//
// The first phoneme of a variant keeps the variant score and is tagged "i",
// the last is tagged "f", a lone phoneme "if". Fresh interior states are
// appended, so the edge list is renumbered afterwards.
func PhonemeAcceptor(g *domain.Graph, phonDict map[string][]domain.Pronunciation) error {
	variants := make([]domain.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.Label.IsPlaceholder() {
			variants = append(variants, e)
			continue
		}
		if e.Label.Kind != domain.KindWord {
			return fmt.Errorf("%w: phoneme stage got %s label on %s", domain.ErrInvariant, e.Label.Kind, e)
		}
		prons, ok := phonDict[e.Label.Symbol]
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrWordNotFound, e.Label.Symbol)
		}
		for _, p := range prons {
			variants = append(variants, domain.Edge{
				From:   e.From,
				To:     e.To,
				Label:  domain.PronunciationLabel(p.Phonemes),
				Weight: p.Score,
			})
		}
	}
	sortByFrom(variants)

	out := make([]domain.Edge, 0, len(variants)*2)
	for _, e := range variants {
		if e.Label.IsPlaceholder() {
			e.Pos = domain.PosInterior
			out = append(out, e)
			continue
		}

		phons := strings.Fields(e.Label.Symbol)
		switch len(phons) {
		case 0:
			return fmt.Errorf("%w: empty pronunciation on %s", domain.ErrMalformedInput, e)
		case 1:
			out = append(out, domain.Edge{
				From: e.From, To: e.To, Label: domain.Phoneme(phons[0]), Weight: e.Weight, Pos: domain.PosInitialFinal,
			})
			continue
		}

		prev := e.From
		last := len(phons) - 1
		for i, p := range phons {
			edge := domain.Edge{From: prev, Label: domain.Phoneme(p)}
			switch i {
			case 0:
				edge.To = g.AddState()
				edge.Weight = e.Weight
				edge.Pos = domain.PosInitial
			case last:
				edge.To = e.To
				edge.Pos = domain.PosFinal
			default:
				edge.To = g.AddState()
			}
			out = append(out, edge)
			prev = edge.To
		}
	}
	sortByFrom(out)

	g.Edges = out
	return Renumber(g.Edges)
}

func sortByFrom(edges []domain.Edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].From < edges[j].From
	})
}
