package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/crucible/internal/mcp/conformance"
	"github.com/louisbranch/crucible/internal/systems"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Crucible MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// conformanceEnvVar enables MCP conformance fixtures when set to "1" or "true" (case-insensitive).
	conformanceEnvVar = "MCP_CONFORMANCE"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// Registry resolves jobs for tool handlers. Nil selects the
	// default registry.
	Registry *systems.Registry
}

// Server hosts the MCP server. The simulation engine runs in process,
// so tool handlers call it directly.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server backed by the given job registry.
func New(registry *systems.Registry) *Server {
	if registry == nil {
		registry = systems.DefaultRegistry
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler: completionHandler,
	})

	registerJobTools(mcpServer, registry)
	registerScenarioTools(mcpServer, registry)
	registerJobResources(mcpServer, registry)
	if conformanceEnabled() {
		conformance.Register(mcpServer)
	}

	return &Server{mcpServer: mcpServer}
}

// completionHandler handles completion/complete requests with empty results.
func completionHandler(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return New(cfg.Registry).serveWithTransport(ctx, &mcp.StdioTransport{})
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// conformanceEnabled reports whether conformance fixtures should be registered.
func conformanceEnabled() bool {
	value := strings.TrimSpace(os.Getenv(conformanceEnvVar))
	if value == "" {
		return false
	}
	return value == "1" || strings.EqualFold(value, "true")
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
