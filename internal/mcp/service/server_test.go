// Package service tests the MCP server wiring.
package service

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/crucible/internal/systems"
	"github.com/louisbranch/crucible/internal/systems/blade"
	"github.com/louisbranch/crucible/internal/systems/ember"
)

func testRegistry() *systems.Registry {
	registry := systems.NewRegistry()
	registry.Register(blade.Job{})
	registry.Register(ember.Job{})
	return registry
}

// TestNewConfiguresServer ensures New returns a configured server.
func TestNewConfiguresServer(t *testing.T) {
	server := New(testRegistry())
	if server == nil || server.mcpServer == nil {
		t.Fatal("expected configured server")
	}
}

// TestNewDefaultsRegistry ensures a nil registry falls back to the default.
func TestNewDefaultsRegistry(t *testing.T) {
	server := New(nil)
	if server == nil || server.mcpServer == nil {
		t.Fatal("expected configured server")
	}
}

// TestServeRequiresConfiguredServer ensures Serve rejects missing servers.
func TestServeRequiresConfiguredServer(t *testing.T) {
	tests := []struct {
		name   string
		server *Server
	}{
		{name: "nil server", server: nil},
		{name: "missing mcp server", server: &Server{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.server.Serve(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

// TestServeStopsOnContext ensures serving exits when the context is cancelled.
func TestServeStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := New(testRegistry())

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), time.Second)
	defer clientCancel()
	clientSession, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer clientSession.Close()

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

// TestRunRejectsUnsupportedTransport ensures Run reports unknown transports.
func TestRunRejectsUnsupportedTransport(t *testing.T) {
	if err := Run(context.Background(), Config{Transport: "carrier-pigeon"}); err == nil {
		t.Fatal("expected error")
	}
}

// TestConformanceEnabledParsesEnv ensures fixture registration honors the env toggle.
func TestConformanceEnabledParsesEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "unset", value: "", want: false},
		{name: "zero", value: "0", want: false},
		{name: "one", value: "1", want: true},
		{name: "true", value: "true", want: true},
		{name: "upper true", value: "TRUE", want: true},
		{name: "yes", value: "yes", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(conformanceEnvVar, tt.value)
			if got := conformanceEnabled(); got != tt.want {
				t.Fatalf("conformanceEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
