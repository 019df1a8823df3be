package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/acceptor/pkg/domain"
)

func raws(s string) []domain.Label {
	out := make([]domain.Label, 0, len(s))
	for _, c := range s {
		out = append(out, domain.Raw(string(c)))
	}
	return out
}

func TestFoldRepetitions(t *testing.T) {
	a, b := domain.Raw("a"), domain.Raw("b")

	tests := []struct {
		name         string
		seq          string
		maxRep       int
		dropTrailing bool
		want         []domain.Label
	}{
		{"disabled", "aaab", 0, false, raws("aaab")},
		{"no repeats", "ab", 2, false, raws("ab")},
		{"run inside", "aaab", 2, false, []domain.Label{a, domain.Index(258), b}},
		{"run longer than max", "aaaab", 2, false, []domain.Label{a, domain.Index(258), domain.Index(257), b}},
		{"max one", "aab", 1, false, []domain.Label{a, domain.Index(257), b}},
		{"trailing run flushed", "baa", 2, false, []domain.Label{b, a, domain.Index(257)}},
		{"trailing run dropped", "baa", 2, true, []domain.Label{b, a}},
		{"trailing chunk dropped", "aaaa", 2, true, []domain.Label{a, domain.Index(258)}},
		{"trailing chunk flushed", "aaaa", 2, false, []domain.Label{a, domain.Index(258), domain.Index(257)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FoldRepetitions(raws(tt.seq), 256, tt.maxRep, tt.dropTrailing)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFoldRepetitions_DoesNotAlias(t *testing.T) {
	seq := raws("ab")
	got := FoldRepetitions(seq, 256, 0, false)
	got[0] = domain.Raw("z")
	assert.Equal(t, domain.Raw("a"), seq[0])
}

func TestBuildASG(t *testing.T) {
	eng := NewEngine()
	req := domain.DefaultRequest(domain.TopologyASG)
	req.Text = "aab"

	g, err := eng.Build(context.Background(), req)
	require.NoError(t, err)

	rep := domain.Index(257)
	assert.Equal(t, 4, g.NumStates)
	assert.Equal(t, []domain.Edge{
		{From: 0, To: 1, Label: domain.Raw("a"), Weight: 1},
		{From: 1, To: 2, Label: rep, Weight: 1},
		{From: 2, To: 3, Label: domain.Raw("b"), Weight: 1},
		{From: 1, To: 1, Label: domain.Raw("a")},
		{From: 2, To: 2, Label: rep},
		{From: 3, To: 3, Label: domain.Raw("b")},
	}, g.Edges)
	require.NoError(t, g.Validate())
	assert.Equal(t, []int{3}, g.Sinks())
}

func TestBuildASG_LabelConversion(t *testing.T) {
	eng := NewEngine()

	req := domain.DefaultRequest(domain.TopologyASG)
	req.Text = "ab"
	req.LabelConversion = true
	g, err := eng.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.Index('a'), g.Edges[0].Label)
	assert.Equal(t, domain.Index('b'), g.Edges[1].Label)

	req.NumLabels = 'b'
	_, err = eng.Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrLabelOutOfRange)

	req.NumLabels = 256
	req.Text = ""
	req.Sequence = []string{"a", "bc"}
	_, err = eng.Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestBuildASG_Errors(t *testing.T) {
	eng := NewEngine()

	req := domain.DefaultRequest(domain.TopologyASG)
	_, err := eng.Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmptySequence)

	req.Text = "a"
	req.ASGRepetition = -1
	_, err = eng.Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	req.ASGRepetition = 2
	req.Sequence = []string{"a", ""}
	_, err = eng.Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}
