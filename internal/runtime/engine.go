package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/ports"
	"github.com/aretw0/acceptor/pkg/schema"
)

// Engine dispatches a request to the builder for its topology.
// It keeps no per-build state and is safe for concurrent use.
type Engine struct {
	lexicon ports.Lexicon
	tying   ports.StateTying
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLexicon sets the pronunciation lexicon used by HMM builds of depth >= 2.
func WithLexicon(lex ports.Lexicon) EngineOption {
	return func(e *Engine) {
		e.lexicon = lex
	}
}

// WithStateTying sets the state-tying table used by HMM builds of depth >= 6.
func WithStateTying(tying ports.StateTying) EngineOption {
	return func(e *Engine) {
		e.tying = tying
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build validates the request and runs the builder for its topology.
func (e *Engine) Build(ctx context.Context, req domain.Request) (*domain.Graph, error) {
	if err := schema.ValidateRequest(req); err != nil {
		return nil, err
	}

	switch req.Topology {
	case domain.TopologyASG:
		return e.buildASG(ctx, req)
	case domain.TopologyCTC:
		return e.buildCTC(ctx, req)
	case domain.TopologyHMM:
		if req.Depth >= 2 && e.lexicon == nil {
			return nil, domain.ErrMissingLexicon
		}
		if req.Depth >= domain.MaxDepth && e.tying == nil {
			return nil, domain.ErrMissingStateTying
		}
		return e.buildHMM(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTopology, req.Topology)
	}
}

// stage runs one transformation and reports it through logs and hooks.
func (e *Engine) stage(ctx context.Context, topology domain.Topology, name string, g *domain.Graph, fn func() error) error {
	started := time.Now()
	if err := fn(); err != nil {
		e.logger.DebugContext(ctx, "stage failed", "stage", name, "err", err)
		return fmt.Errorf("%s stage: %w", name, err)
	}

	elapsed := time.Since(started)
	e.logger.DebugContext(ctx, "stage done",
		"topology", topology,
		"stage", name,
		"num_states", g.NumStates,
		"num_edges", len(g.Edges),
	)

	if e.hooks.OnStage != nil {
		e.hooks.OnStage(ctx, &domain.StageEvent{
			Timestamp: started,
			Topology:  topology,
			Stage:     name,
			NumStates: g.NumStates,
			NumEdges:  len(g.Edges),
			Duration:  elapsed,
		})
	}
	return nil
}
