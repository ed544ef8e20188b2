// Package mcp parses MCP command flags and serves the MCP adapter.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/crucible/internal/mcp/service"
	"github.com/louisbranch/crucible/internal/platform/config"
	"github.com/louisbranch/crucible/internal/platform/otel"

	// Job kits register themselves on import.
	_ "github.com/louisbranch/crucible/internal/systems/blade"
	_ "github.com/louisbranch/crucible/internal/systems/ember"
)

// Config holds MCP command configuration.
type Config struct {
	Transport string `env:"CRUCIBLE_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{Transport: service.TransportKind(cfg.Transport)})
}
