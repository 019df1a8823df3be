package runtime

import (
	"context"

	"github.com/aretw0/acceptor/pkg/domain"
)

// buildCTC builds the blank-interleaved lattice and merges its final states.
func (e *Engine) buildCTC(ctx context.Context, req domain.Request) (*domain.Graph, error) {
	labels, err := convertLabels(req)
	if err != nil {
		return nil, err
	}

	g := domain.NewGraph()
	topo := domain.TopologyCTC
	var finals []int

	err = e.stage(ctx, topo, domain.StageCTCLattice, g, func() error {
		finals = ctcLattice(g, labels, req.ReferenceQuirks)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, topo, domain.StageLoops, g, func() error {
		AddLoops(g, 1, g.NumStates)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, topo, domain.StageFinalMerge, g, func() error {
		MergeFinalStates(g, finals)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ctcLattice lays out label states at even ids and blank states at odd ids,
// then appends a blank → last label → blank tail. It returns the final states.
func ctcLattice(g *domain.Graph, labels []domain.Label, wrapFirst bool) []int {
	n := len(labels)
	g.NumStates = 2*(n+1) - 1

	// skip edges; a repeated label must pass through its blank
	for i, l := range labels {
		prev := i - 1
		if prev < 0 {
			if !wrapFirst {
				g.AddEdge(0, 2, l, domain.ArcWeight, domain.PosInterior)
				continue
			}
			prev = n - 1
		}
		if l != labels[prev] {
			g.AddEdge(2*i, 2*i+2, l, domain.ArcWeight, domain.PosInterior)
		}
	}

	for i, l := range labels {
		b := 2*i + 1
		g.AddEdge(b-1, b, domain.Blank(), domain.ArcWeight, domain.PosInterior)
		g.AddEdge(b, b+1, l, domain.ArcWeight, domain.PosInterior)
	}
	finals := []int{2 * n}

	tail := g.NumStates
	g.AddEdge(tail-3, tail, domain.Blank(), domain.ArcWeight, domain.PosInterior)
	g.AddEdge(tail, tail+1, labels[n-1], domain.ArcWeight, domain.PosInterior)
	g.AddEdge(tail+1, tail+2, domain.Blank(), domain.ArcWeight, domain.PosInterior)
	g.NumStates += 3

	return append(finals, g.NumStates-1)
}
