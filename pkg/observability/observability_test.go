package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := observability.NewMetrics(reg).Hooks()
	ctx := context.Background()

	hooks.OnStage(ctx, &domain.StageEvent{Topology: domain.TopologyCTC, Stage: domain.StageCTCLattice, Duration: time.Millisecond})
	hooks.OnBuild(ctx, &domain.BuildEvent{Topology: domain.TopologyCTC, NumStates: 9, NumEdges: 20, Duration: time.Millisecond})
	hooks.OnBuild(ctx, &domain.BuildEvent{Topology: domain.TopologyCTC, Err: errors.New("boom")})

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["acceptor_builds_total"])
	assert.True(t, names["acceptor_stage_duration_seconds"])
	assert.True(t, names["acceptor_graph_states"])

	count, err := testutil.GatherAndCount(reg, "acceptor_builds_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per status")
}

func TestMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)
	assert.Panics(t, func() { observability.NewMetrics(reg) })
}

func TestTracer_BuildSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := observability.NewTracer(tp)
	hooks := tracer.Hooks()

	req := domain.DefaultRequest(domain.TopologyHMM)
	ctx, span := tracer.StartBuild(context.Background(), req)
	hooks.OnStage(ctx, &domain.StageEvent{Stage: domain.StageLemma, NumStates: 4, NumEdges: 5})
	hooks.OnStage(ctx, &domain.StageEvent{Stage: domain.StagePhoneme, NumStates: 6, NumEdges: 7})

	g := domain.NewGraph()
	g.NumStates = 6
	tracer.EndBuild(span, g, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "acceptor.Build", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	events := spans[0].Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.StageLemma, events[0].Name)
	assert.Equal(t, domain.StagePhoneme, events[1].Name)
}

func TestTracer_BuildError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := observability.NewTracer(tp)
	_, span := tracer.StartBuild(context.Background(), domain.DefaultRequest(domain.TopologyASG))
	tracer.EndBuild(span, nil, domain.ErrEmptySequence)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracer_HooksWithoutSpan(t *testing.T) {
	hooks := observability.NewTracer(nil).Hooks()
	assert.NotPanics(t, func() {
		hooks.OnStage(context.Background(), &domain.StageEvent{Stage: domain.StageLoops})
	})
}

func TestCombine(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnStage: func(context.Context, *domain.StageEvent) { order = append(order, "a-stage") },
	}
	b := domain.LifecycleHooks{
		OnStage: func(context.Context, *domain.StageEvent) { order = append(order, "b-stage") },
		OnBuild: func(context.Context, *domain.BuildEvent) { order = append(order, "b-build") },
	}

	hooks := observability.Combine(a, b, domain.LifecycleHooks{})
	hooks.OnStage(context.Background(), &domain.StageEvent{})
	hooks.OnBuild(context.Background(), &domain.BuildEvent{})
	assert.Equal(t, []string{"a-stage", "b-stage", "b-build"}, order)

	empty := observability.Combine()
	assert.Nil(t, empty.OnStage)
	assert.Nil(t, empty.OnBuild)
}
