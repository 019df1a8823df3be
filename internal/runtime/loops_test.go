package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/acceptor/pkg/domain"
)

func TestAddLoops(t *testing.T) {
	g := &domain.Graph{NumStates: 4}
	g.AddEdge(0, 1, domain.Epsilon(), 0, domain.PosInterior)
	g.AddEdge(0, 1, domain.Phoneme("k"), 0.5, domain.PosInitial)
	g.AddEdge(1, 2, domain.Phoneme("a"), 0, domain.PosFinal)
	g.AddEdge(1, 2, domain.Phoneme("o"), 0, domain.PosFinal)

	AddLoops(g, 1, g.NumStates)

	assert.Equal(t, []domain.Edge{
		{From: 1, To: 1, Label: domain.Phoneme("k"), Pos: domain.PosInitial},
		{From: 2, To: 2, Label: domain.Phoneme("a"), Pos: domain.PosFinal},
		{From: 3, To: 3},
	}, g.Edges[4:])
	assert.Equal(t, 4, g.NumStates)
}

func TestAddLoops_ClampsRange(t *testing.T) {
	g := &domain.Graph{NumStates: 2}
	g.AddEdge(0, 1, domain.Raw("a"), domain.ArcWeight, domain.PosInterior)

	AddLoops(g, -3, 10)

	assert.Len(t, g.Edges, 3)
	assert.True(t, g.Edges[1].IsLoop())
	assert.Equal(t, 0, g.Edges[1].From)
	assert.Equal(t, domain.Raw("a"), g.Edges[2].Label)
	assert.Zero(t, g.Edges[2].Weight)
}

func TestAddLoops_EmptyRange(t *testing.T) {
	g := &domain.Graph{NumStates: 2, Edges: []domain.Edge{}}

	AddLoops(g, 1, 1)

	assert.Empty(t, g.Edges)
}
