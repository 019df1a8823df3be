package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/config"
	"github.com/aretw0/acceptor/pkg/ports"
)

// ToolBuildAcceptor is the name of the build tool.
const ToolBuildAcceptor = "build_acceptor"

// Server wraps a Builder and exposes it as an MCP Server.
type Server struct {
	builder   ports.Builder
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(builder ports.Builder) *Server {
	s := &Server{
		builder:   builder,
		mcpServer: server.NewMCPServer("acceptor-mcp", strings.TrimSpace(acceptor.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	buildTool := mcp.NewTool(ToolBuildAcceptor,
		mcp.WithDescription("Build a label-topology acceptor (ASG, CTC or HMM) and return it as JSON: num_states plus an ordered edge list."),
		mcp.WithString("topology", mcp.Enum("asg", "ctc", "hmm"), mcp.Description("Acceptor family (default hmm)")),
		mcp.WithString("text", mcp.Description("Label string (asg/ctc) or space-separated word sequence (hmm)")),
		mcp.WithArray("sequence", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Pre-split labels or words; overrides text")),
		mcp.WithNumber("depth", mcp.Description("HMM stages to run, 1-6 (default 6)")),
		mcp.WithNumber("allo_num_states", mcp.Description("Sub-states per allophone (default 3)")),
		mcp.WithNumber("asg_repetition", mcp.Description("Largest repeat count per ASG repetition label (default 2)")),
		mcp.WithNumber("num_labels", mcp.Description("Label inventory size (default 256)")),
		mcp.WithBoolean("label_conversion", mcp.Description("Emit integer labels instead of symbols")),
	)
	s.mcpServer.AddTool(buildTool, s.handleBuild)
}

func (s *Server) handleBuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := config.DecodeRequest(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	g, err := s.builder.Build(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return mcp.NewToolResultError(fmt.Sprintf("build failed: %v", err)), nil
	}

	jsonBytes, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
