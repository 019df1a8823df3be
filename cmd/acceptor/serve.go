package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor"
	httpAdapter "github.com/aretw0/acceptor/pkg/adapters/http"
	"github.com/aretw0/acceptor/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP build service",
	Long: `Starts the acceptor engine as a stateless HTTP service.
POST /v1/acceptors builds a graph; /metrics exposes Prometheus metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	addCollaboratorFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, collaboratorFlags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	addr, _ := cmd.Flags().GetString("addr")

	opts, closeFn, err := engineOptions(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close collaborators", "err", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)
	tracer := observability.NewTracer(nil)

	engine := acceptor.New(append(opts,
		acceptor.WithLogger(logger),
		acceptor.WithTracer(tracer),
		acceptor.WithLifecycleHooks(observability.Combine(metrics.Hooks(), tracer.Hooks())),
	)...)

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpAdapter.NewHandler(engine, reg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Starting acceptor server", "addr", srv.Addr, "topology_default", cfg.Topology)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case sig := <-shutdown:
		logger.Info("Start shutdown", "signal", sig)

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
			if err := srv.Close(); err != nil {
				logger.Error("Error killing server", "err", err)
			}
		}
		logger.Info("Acceptor server stopped gracefully")
		return nil
	}
}
