package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	builds        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	stageDuration *prometheus.HistogramVec
	graphStates   *prometheus.HistogramVec
	graphEdges    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if they are already registered, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acceptor_builds_total",
				Help: "Total number of acceptor builds",
			},
			[]string{"topology", "status"},
		),
		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "acceptor_build_duration_seconds",
				Help:    "Duration of acceptor builds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"topology"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "acceptor_stage_duration_seconds",
				Help:    "Duration of individual construction stages",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"topology", "stage"},
		),
		graphStates: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "acceptor_graph_states",
				Help:    "Number of states in built acceptors",
				Buckets: prometheus.ExponentialBuckets(4, 2, 12),
			},
			[]string{"topology"},
		),
		graphEdges: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "acceptor_graph_edges",
				Help:    "Number of edges in built acceptors",
				Buckets: prometheus.ExponentialBuckets(4, 2, 12),
			},
			[]string{"topology"},
		),
	}
	reg.MustRegister(m.builds, m.buildDuration, m.stageDuration, m.graphStates, m.graphEdges)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStage: func(ctx context.Context, e *domain.StageEvent) {
			m.stageDuration.WithLabelValues(string(e.Topology), e.Stage).Observe(e.Duration.Seconds())
		},
		OnBuild: func(ctx context.Context, e *domain.BuildEvent) {
			topo := string(e.Topology)
			if e.Err != nil {
				m.builds.WithLabelValues(topo, "error").Inc()
				return
			}
			m.builds.WithLabelValues(topo, "ok").Inc()
			m.buildDuration.WithLabelValues(topo).Observe(e.Duration.Seconds())
			m.graphStates.WithLabelValues(topo).Observe(float64(e.NumStates))
			m.graphEdges.WithLabelValues(topo).Observe(float64(e.NumEdges))
		},
	}
}
