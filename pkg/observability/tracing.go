package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/acceptor/pkg/domain"
)

const instrumentationName = "github.com/aretw0/acceptor"

// Tracer wraps an OpenTelemetry tracer for acceptor builds.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer from tp, or from the global provider if tp is nil.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(instrumentationName)}
}

// StartBuild opens the span that covers one build.
func (t *Tracer) StartBuild(ctx context.Context, req domain.Request) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("acceptor.topology", string(req.Topology)),
		attribute.Bool("acceptor.label_conversion", req.LabelConversion),
	}
	if req.Topology == domain.TopologyHMM {
		attrs = append(attrs,
			attribute.Int("acceptor.depth", req.Depth),
			attribute.Int("acceptor.allo_num_states", req.AlloNumStates),
		)
	}
	return t.tracer.Start(ctx, "acceptor.Build", trace.WithAttributes(attrs...))
}

// EndBuild records the outcome on span and ends it.
func (t *Tracer) EndBuild(span trace.Span, g *domain.Graph, err error) {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int("acceptor.num_states", g.NumStates),
		attribute.Int("acceptor.num_edges", len(g.Edges)),
	)
	span.SetStatus(codes.Ok, "")
}

// Hooks returns lifecycle hooks that add one event per stage to the span
// found in the stage context.
func (t *Tracer) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStage: func(ctx context.Context, e *domain.StageEvent) {
			span := trace.SpanFromContext(ctx)
			if !span.IsRecording() {
				return
			}
			span.AddEvent(e.Stage, trace.WithAttributes(
				attribute.Int("num_states", e.NumStates),
				attribute.Int("num_edges", e.NumEdges),
				attribute.Int64("duration_us", e.Duration.Microseconds()),
			))
		},
	}
}
