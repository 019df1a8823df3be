package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/acceptor/pkg/domain"
)

func sampleGraph() *domain.Graph {
	g := &domain.Graph{NumStates: 4}
	g.AddEdge(0, 1, domain.Raw("a"), 1, domain.PosInterior)
	g.AddEdge(1, 3, domain.Raw("b"), 1, domain.PosInterior)
	g.AddEdge(0, 2, domain.Blank(), 1, domain.PosInterior)
	g.AddEdge(1, 1, domain.Raw("a"), 0, domain.PosInterior)
	return g
}

func TestDangling(t *testing.T) {
	assert.Equal(t, []int{2}, Dangling(sampleGraph()))

	g := &domain.Graph{NumStates: 2}
	g.AddEdge(0, 1, domain.Raw("a"), 1, domain.PosInterior)
	assert.Empty(t, Dangling(g))
}

func TestReport(t *testing.T) {
	md := Report("ctc acceptor", sampleGraph())

	assert.Contains(t, md, "# ctc acceptor")
	assert.Contains(t, md, "| States | 4 |")
	assert.Contains(t, md, "| Edges | 4 |")
	assert.Contains(t, md, "| Self-loops | 1 |")
	assert.Contains(t, md, "| Final state | 3 |")
	assert.Contains(t, md, "| raw | 3 |")
	assert.Contains(t, md, "| blank | 1 |")
	assert.Contains(t, md, "- state 2 has no outgoing edge")
	assert.Less(t, bytes.Index([]byte(md), []byte("| raw |")), bytes.Index([]byte(md), []byte("| blank |")))
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(80)
	require.NoError(t, err)

	out, err := render(Report("asg acceptor", sampleGraph()))
	require.NoError(t, err)
	assert.Contains(t, out, "asg acceptor")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

	PrintSummary(out, Summary{
		Topology: domain.TopologyCTC,
		Input:    "ab",
		Graph:    sampleGraph(),
		Elapsed:  1500 * time.Microsecond,
	})

	got := buf.String()
	assert.Contains(t, got, `ctc "ab"`)
	assert.Contains(t, got, "states 4")
	assert.Contains(t, got, "edges  4")
	assert.Contains(t, got, "1.5ms")
	assert.Contains(t, got, "1 dangling states: [2]")
}
