package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/acceptor/pkg/adapters/file"
	"github.com/aretw0/acceptor/pkg/domain"
)

func TestWriteGraph_ReadGraph(t *testing.T) {
	g := domain.NewGraph()
	g.NumStates = 3
	g.AddEdge(0, 1, domain.Index(97), 1, domain.PosInterior)
	g.AddEdge(1, 2, domain.Raw("b"), 1, domain.PosInterior)
	g.AddEdge(1, 1, domain.Index(97), 0, domain.PosInterior)

	path := filepath.Join(t.TempDir(), "out", "graph.json")
	require.NoError(t, file.WriteGraph(path, g))
	// overwrite keeps a single file
	require.NoError(t, file.WriteGraph(path, g))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	got, err := file.ReadGraph(path)
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestReadGraph_RejectsBackwardEdges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	content := `{"num_states": 2, "edges": [{"from": 1, "to": 0, "label": "a", "weight": 1}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := file.ReadGraph(path)
	assert.ErrorIs(t, err, domain.ErrInvariant)
}

func TestWriteGraph_EmptyPath(t *testing.T) {
	assert.Error(t, file.WriteGraph("", domain.NewGraph()))
}
