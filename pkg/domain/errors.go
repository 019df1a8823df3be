package domain

import "errors"

// Configuration errors are returned before any graph construction begins.
var (
	// ErrInvalidConfig is returned when a build parameter is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownTopology is returned when the topology is not asg, ctc or hmm.
	ErrUnknownTopology = errors.New("unknown topology")

	// ErrMissingLexicon is returned when an HMM build of depth >= 2 has no lexicon.
	ErrMissingLexicon = errors.New("lexicon required for hmm depth >= 2")

	// ErrMissingStateTying is returned when an HMM build of depth >= 6 has no state-tying table.
	ErrMissingStateTying = errors.New("state tying required for hmm depth >= 6")
)

// Input errors are returned by the stage that first detects them.
var (
	// ErrEmptySequence is returned when the label or word sequence is empty.
	ErrEmptySequence = errors.New("empty label sequence")

	// ErrLabelOutOfRange is returned when a converted label index is >= num_labels.
	ErrLabelOutOfRange = errors.New("label index exceeds number of labels")

	// ErrMalformedInput is returned for input that cannot be interpreted.
	ErrMalformedInput = errors.New("malformed input")
)

// Collaborator errors abort the run and carry the offending key.
var (
	// ErrWordNotFound is returned when the lexicon has no entry for a word.
	ErrWordNotFound = errors.New("word not found in lexicon")

	// ErrAllophoneNotFound is returned when the state-tying table has no entry for an allophone.
	ErrAllophoneNotFound = errors.New("allophone not found in state tying")
)

// Invariant errors indicate a defect; they are never recovered.
var (
	// ErrInvariant is returned when a graph breaks a structural invariant.
	ErrInvariant = errors.New("internal invariant violated")

	// ErrRenumberDiverged is returned when node renumbering does not reach a fixpoint.
	ErrRenumberDiverged = errors.New("node renumbering did not converge")

	// ErrAmbiguousContext is returned when a phoneme has several non-placeholder neighbours.
	ErrAmbiguousContext = errors.New("ambiguous triphone context")
)
