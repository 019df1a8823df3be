package runtime

import (
	"fmt"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Renumber restores the invariant "every edge has From <= To" after a rewrite
// appended states with out-of-order ids.
//
// At the first inverted edge the two node ids are exchanged across the whole
// edge list, and the scan restarts from the first edge because one exchange
// can invert edges elsewhere. The edge list is modified in place.
func Renumber(edges []domain.Edge) error {
	limit := len(edges)*len(edges) + 1
	swaps := 0

	for i := 0; i < len(edges); i++ {
		e := edges[i]
		if e.From <= e.To {
			continue
		}
		if swaps == limit {
			return fmt.Errorf("%w: gave up after %d exchanges at edge %d %s",
				domain.ErrRenumberDiverged, swaps, i, e)
		}
		exchangeNodes(edges, e.From, e.To)
		swaps++
		i = -1
	}
	return nil
}

// exchangeNodes swaps every occurrence of node ids a and b.
// Each endpoint is checked independently, so a loop (a,a) becomes (b,b).
func exchangeNodes(edges []domain.Edge, a, b int) {
	swap := func(n int) int {
		switch n {
		case a:
			return b
		case b:
			return a
		default:
			return n
		}
	}
	for i := range edges {
		edges[i].From = swap(edges[i].From)
		edges[i].To = swap(edges[i].To)
	}
}
