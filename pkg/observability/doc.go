/*
Package observability connects acceptor builds to Prometheus and OpenTelemetry.

Both integrations are driven by domain.LifecycleHooks: Metrics.Hooks records
build and stage counters and histograms, Tracer.Hooks adds one span event per
stage to the span carried by the build context. Combine chains several hook
sets so both can be installed at once:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	tracer := observability.NewTracer(nil)
	eng := acceptor.New(
		acceptor.WithTracer(tracer),
		acceptor.WithLifecycleHooks(observability.Combine(metrics.Hooks(), tracer.Hooks())),
	)
*/
package observability
