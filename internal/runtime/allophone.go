package runtime

import (
	"fmt"

	"github.com/aretw0/acceptor/pkg/domain"
)

// AllophoneAcceptor splits every triphone edge into a chain of numStates
// allophone sub-state edges joined by numStates-1 fresh states. Each sub-edge
// keeps the triphone weight and position tag.
func AllophoneAcceptor(g *domain.Graph, numStates int) error {
	if numStates < 1 {
		return fmt.Errorf("%w: allo_num_states %d", domain.ErrInvalidConfig, numStates)
	}

	out := make([]domain.Edge, 0, len(g.Edges)*numStates)
	for _, e := range g.Edges {
		if e.Label.IsPlaceholder() {
			out = append(out, e)
			continue
		}
		if e.Label.Kind != domain.KindTriphone {
			return fmt.Errorf("%w: allophone stage got %s label on %s", domain.ErrInvariant, e.Label.Kind, e)
		}

		l := e.Label
		prev := e.From
		for s := 0; s < numStates; s++ {
			to := e.To
			if s < numStates-1 {
				to = g.AddState()
			}
			out = append(out, domain.Edge{
				From:   prev,
				To:     to,
				Label:  domain.Allophone(l.Left, l.Center, l.Right, s),
				Weight: e.Weight,
				Pos:    e.Pos,
			})
			prev = to
		}
	}

	g.Edges = out
	return Renumber(g.Edges)
}
