package domain

import (
	"context"
	"time"
)

// Stage names reported in StageEvent.
const (
	StageASGFold      = "asg_fold"
	StageASGChain     = "asg_chain"
	StageCTCLattice   = "ctc_lattice"
	StageLoops        = "loops"
	StageFinalMerge   = "final_merge"
	StageLemma        = "lemma"
	StagePhoneme      = "phoneme"
	StageTriphone     = "triphone"
	StageAllophone    = "allophone"
	StageStateTying   = "state_tying"
	StageLexiconFetch = "lexicon_fetch"
	StageTyingFetch   = "tying_fetch"
)

// StageEvent describes one finished pipeline stage.
type StageEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Topology  Topology      `json:"topology"`
	Stage     string        `json:"stage"`
	NumStates int           `json:"num_states"`
	NumEdges  int           `json:"num_edges"`
	Duration  time.Duration `json:"duration"`
}

// BuildEvent describes a finished build.
type BuildEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Topology  Topology      `json:"topology"`
	NumStates int           `json:"num_states"`
	NumEdges  int           `json:"num_edges"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for build observability.
type LifecycleHooks struct {
	OnStage func(context.Context, *StageEvent)
	OnBuild func(context.Context, *BuildEvent)
}
