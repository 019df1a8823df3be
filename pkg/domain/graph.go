package domain

import (
	"fmt"
)

// PositionTag marks where a phoneme sits inside its word.
type PositionTag string

const (
	PosInterior     PositionTag = ""
	PosInitial      PositionTag = "i"
	PosFinal        PositionTag = "f"
	PosInitialFinal PositionTag = "if"
)

// ArcWeight is the cost given to plain chain, blank and merge edges.
const ArcWeight = 1.0

// Edge is a weighted, labelled transition between two states.
// Weight is a cost in negative-log space.
type Edge struct {
	From   int         `json:"from"`
	To     int         `json:"to"`
	Label  Label       `json:"label"`
	Weight float64     `json:"weight"`
	Pos    PositionTag `json:"pos,omitempty"`
}

// IsLoop reports whether the edge starts and ends in the same state.
func (e Edge) IsLoop() bool { return e.From == e.To }

func (e Edge) String() string {
	if e.Pos != PosInterior {
		return fmt.Sprintf("(%d -> %d, %s, %g, %s)", e.From, e.To, e.Label, e.Weight, e.Pos)
	}
	return fmt.Sprintf("(%d -> %d, %s, %g)", e.From, e.To, e.Label, e.Weight)
}

// Graph is an acceptor: a state count plus an ordered edge list.
// State 0 is the start state; the highest state id is the final state.
type Graph struct {
	NumStates int    `json:"num_states"`
	Edges     []Edge `json:"edges"`
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{Edges: []Edge{}}
}

// AddEdge appends an edge. No ordering checks are made here; see Validate.
func (g *Graph) AddEdge(from, to int, label Label, weight float64, pos PositionTag) {
	g.Edges = append(g.Edges, Edge{From: from, To: to, Label: label, Weight: weight, Pos: pos})
}

// AddState allocates a fresh state and returns its id.
func (g *Graph) AddState() int {
	g.NumStates++
	return g.NumStates - 1
}

// NodeCount returns the number of states.
func (g *Graph) NodeCount() int { return g.NumStates }

// FinalState returns the id of the final state, or -1 for an empty graph.
func (g *Graph) FinalState() int { return g.NumStates - 1 }

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	edges := make([]Edge, len(g.Edges))
	copy(edges, g.Edges)
	return &Graph{NumStates: g.NumStates, Edges: edges}
}

// Validate checks that every edge stays within range and never points backwards.
func (g *Graph) Validate() error {
	for i, e := range g.Edges {
		if e.From < 0 || e.To < 0 || e.From >= g.NumStates || e.To >= g.NumStates {
			return fmt.Errorf("%w: edge %d %s out of range [0,%d)", ErrInvariant, i, e, g.NumStates)
		}
		if e.From > e.To {
			return fmt.Errorf("%w: edge %d %s points backwards", ErrInvariant, i, e)
		}
	}
	return nil
}

// Sinks returns the states that have no outgoing edge other than a self-loop.
func (g *Graph) Sinks() []int {
	out := make([]bool, g.NumStates)
	for _, e := range g.Edges {
		if !e.IsLoop() && e.From >= 0 && e.From < g.NumStates {
			out[e.From] = true
		}
	}
	var sinks []int
	for s, has := range out {
		if !has {
			sinks = append(sinks, s)
		}
	}
	return sinks
}
