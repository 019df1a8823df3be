package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the acceptor engine as an MCP Server exposing the build_acceptor tool.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	addCollaboratorFlags(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, collaboratorFlags)
	if err != nil {
		return err
	}
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	// stdout carries JSON-RPC; every log goes to stderr
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	log.SetOutput(os.Stderr)

	opts, closeFn, err := engineOptions(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close collaborators", "err", err)
		}
	}()

	srv := mcp.NewServer(acceptor.New(append(opts, acceptor.WithLogger(logger))...))

	switch transport {
	case "stdio":
		slog.Info("Starting acceptor MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		slog.Info("Starting acceptor MCP Server (SSE)", "port", port)

		// Create a context that cancels on interrupt signal
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ServeSSE(ctx, port); err != nil && err != http.ErrServerClosed {
			return err
		}
		slog.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}
