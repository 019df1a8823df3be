package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/acceptor/pkg/domain"
)

// WriteGraph writes g as indented JSON to path atomically.
// It writes to a temporary file first, syncs, and then renames it to the destination.
func WriteGraph(path string, g *domain.Graph) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	// same directory so the rename stays on one filesystem
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing graph file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// ReadGraph reads a graph written by WriteGraph.
// Labels come back as plain symbols: numbers become index labels and
// strings become raw labels.
func ReadGraph(path string) (*domain.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	var raw struct {
		NumStates int `json:"num_states"`
		Edges     []struct {
			From   int                `json:"from"`
			To     int                `json:"to"`
			Label  any                `json:"label"`
			Weight float64            `json:"weight"`
			Pos    domain.PositionTag `json:"pos"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}

	g := domain.NewGraph()
	g.NumStates = raw.NumStates
	for _, e := range raw.Edges {
		var label domain.Label
		switch v := e.Label.(type) {
		case float64:
			label = domain.Index(int(v))
		case string:
			label = domain.Raw(v)
		}
		g.AddEdge(e.From, e.To, label, e.Weight, e.Pos)
	}
	return g, g.Validate()
}
