package runtime

import (
	"fmt"

	"github.com/aretw0/acceptor/pkg/domain"
)

// TriphoneAcceptor relabels every phoneme edge with its left and right
// phoneme context. Placeholder edges are left unchanged.
func TriphoneAcceptor(g *domain.Graph) error {
	out := make([]domain.Edge, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = e
		if e.Label.IsPlaceholder() {
			continue
		}
		if e.Label.Kind != domain.KindPhoneme {
			return fmt.Errorf("%w: triphone stage got %s label on %s", domain.ErrInvariant, e.Label.Kind, e)
		}

		left, err := neighbourContext(g.Edges, e, false)
		if err != nil {
			return err
		}
		right, err := neighbourContext(g.Edges, e, true)
		if err != nil {
			return err
		}
		out[i].Label = domain.Triphone(left, e.Label.Symbol, right)
	}
	g.Edges = out
	return nil
}

// neighbourContext returns the phoneme on the unique edge entering cur.From
// (next == false) or leaving cur.To (next == true). Several candidates are
// only allowed when all of them are placeholders; placeholders and missing
// neighbours give an empty context.
func neighbourContext(edges []domain.Edge, cur domain.Edge, next bool) (string, error) {
	var candidates []domain.Edge
	for _, e := range edges {
		if e.IsLoop() {
			continue
		}
		if (next && e.From == cur.To) || (!next && e.To == cur.From) {
			candidates = append(candidates, e)
		}
	}

	if len(candidates) > 1 {
		for _, c := range candidates {
			if !c.Label.IsPlaceholder() {
				return "", fmt.Errorf("%w: %s has %d neighbours, %s is not silence or epsilon",
					domain.ErrAmbiguousContext, cur, len(candidates), c)
			}
		}
		return "", nil
	}
	if len(candidates) == 0 || candidates[0].Label.IsPlaceholder() {
		return "", nil
	}
	return candidates[0].Label.Symbol, nil
}
