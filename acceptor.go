package acceptor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/acceptor/internal/runtime"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/observability"
	"github.com/aretw0/acceptor/pkg/ports"
)

// Engine is the high-level entry point for the acceptor library.
// It wraps the internal runtime and adds tracing, build hooks and batching.
type Engine struct {
	runtime     *runtime.Engine
	lexicon     ports.Lexicon
	tying       ports.StateTying
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	tracer      *observability.Tracer
	concurrency int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLexicon sets the pronunciation lexicon needed by HMM builds of depth >= 2.
func WithLexicon(lex ports.Lexicon) Option {
	return func(e *Engine) {
		e.lexicon = lex
	}
}

// WithStateTying sets the state-tying table needed by HMM builds of depth >= 6.
func WithStateTying(tying ports.StateTying) Option {
	return func(e *Engine) {
		e.tying = tying
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracer wraps every build in an OpenTelemetry span.
func WithTracer(t *observability.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithConcurrency bounds the number of builds BuildBatch runs at once.
// Values below 1 mean no limit.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// never hand a nil logger to the runtime
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLexicon(eng.lexicon),
		runtime.WithStateTying(eng.tying),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{OnStage: eng.hooks.OnStage}),
		runtime.WithLogger(eng.logger),
	)
	return eng
}

// Build constructs the acceptor described by req.
func (e *Engine) Build(ctx context.Context, req domain.Request) (*domain.Graph, error) {
	started := time.Now()

	if e.tracer == nil {
		g, err := e.runtime.Build(ctx, req)
		e.report(ctx, req, g, err, started)
		return g, err
	}

	ctx, span := e.tracer.StartBuild(ctx, req)
	g, err := e.runtime.Build(ctx, req)
	e.tracer.EndBuild(span, g, err)
	e.report(ctx, req, g, err, started)
	return g, err
}

// BuildBatch builds every request, at most WithConcurrency at a time.
// Results keep the order of reqs. The first error cancels the remaining
// builds and is returned.
func (e *Engine) BuildBatch(ctx context.Context, reqs []domain.Request) ([]*domain.Graph, error) {
	graphs := make([]*domain.Graph, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			graph, err := e.Build(gctx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			graphs[i] = graph
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}

func (e *Engine) report(ctx context.Context, req domain.Request, g *domain.Graph, err error, started time.Time) {
	elapsed := time.Since(started)
	if err != nil {
		e.logger.ErrorContext(ctx, "build failed", "topology", req.Topology, "err", err)
	} else {
		e.logger.InfoContext(ctx, "build done",
			"topology", req.Topology,
			"num_states", g.NumStates,
			"num_edges", len(g.Edges),
			"duration", elapsed,
		)
	}

	if e.hooks.OnBuild == nil {
		return
	}
	event := &domain.BuildEvent{
		Timestamp: started,
		Topology:  req.Topology,
		Duration:  elapsed,
		Err:       err,
	}
	if g != nil {
		event.NumStates = g.NumStates
		event.NumEdges = len(g.Edges)
	}
	e.hooks.OnBuild(ctx, event)
}
