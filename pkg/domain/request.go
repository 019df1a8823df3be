package domain

import (
	"fmt"
	"strings"
)

// Topology selects the acceptor family.
type Topology string

const (
	TopologyASG Topology = "asg"
	TopologyCTC Topology = "ctc"
	TopologyHMM Topology = "hmm"
)

// ParseTopology normalises a topology name. Matching is case-insensitive.
func ParseTopology(s string) (Topology, error) {
	switch t := Topology(strings.ToLower(strings.TrimSpace(s))); t {
	case TopologyASG, TopologyCTC, TopologyHMM:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTopology, s)
	}
}

// MaxDepth is the deepest HMM stage (state tying).
const MaxDepth = 6

// Request describes one acceptor build.
type Request struct {
	Topology Topology `json:"topology"`

	// Text is the label string (ASG/CTC, one label per rune) or the
	// space-separated word sequence (HMM). Ignored when Sequence is set.
	Text string `json:"text,omitempty"`

	// Sequence is a pre-split label or word sequence.
	Sequence []string `json:"sequence,omitempty"`

	// ASGRepetition is the largest repeat count a single repetition label encodes.
	ASGRepetition int `json:"asg_repetition"`

	// NumLabels is the size of the label inventory (ASG/CTC).
	NumLabels int `json:"num_labels"`

	// Depth selects how many HMM stages run (1..6).
	Depth int `json:"depth"`

	// AlloNumStates is the number of sub-states per allophone (HMM).
	AlloNumStates int `json:"allo_num_states"`

	// LabelConversion emits integer labels instead of symbols.
	LabelConversion bool `json:"label_conversion"`

	// ReferenceQuirks reproduces two boundary behaviours of the reference
	// generator: a trailing ASG repeat count is dropped, and the first CTC
	// label is compared with the last one when collapsing duplicates.
	ReferenceQuirks bool `json:"reference_quirks,omitempty"`
}

// DefaultRequest returns a request with the reference defaults filled in.
func DefaultRequest(topology Topology) Request {
	return Request{
		Topology:      topology,
		ASGRepetition: 2,
		NumLabels:     256,
		Depth:         MaxDepth,
		AlloNumStates: 3,
	}
}

// Labels returns the label sequence for ASG/CTC builds.
func (r Request) Labels() []string {
	if len(r.Sequence) > 0 {
		return r.Sequence
	}
	labels := make([]string, 0, len(r.Text))
	for _, c := range r.Text {
		labels = append(labels, string(c))
	}
	return labels
}

// Words returns the lower-cased word sequence for HMM builds.
func (r Request) Words() []string {
	src := r.Sequence
	if len(src) == 0 {
		src = strings.Fields(r.Text)
	}
	words := make([]string, 0, len(src))
	for _, w := range src {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Pronunciation is one lexicon variant of a word: a space-separated
// phoneme string and its score (a cost, like edge weights).
type Pronunciation struct {
	Phonemes string  `json:"phon" yaml:"phon" mapstructure:"phon"`
	Score    float64 `json:"score" yaml:"score" mapstructure:"score"`
}
