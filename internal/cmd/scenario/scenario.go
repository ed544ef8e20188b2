// Package scenario parses scenario command flags and runs one fight
// script against the in-process engine.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/louisbranch/crucible/internal/platform/config"
	"github.com/louisbranch/crucible/internal/tools/scenario"

	// Job kits register themselves on import.
	_ "github.com/louisbranch/crucible/internal/systems/blade"
	_ "github.com/louisbranch/crucible/internal/systems/ember"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string `env:"CRUCIBLE_SCENARIO_FILE"`
	Assertions bool   `env:"CRUCIBLE_SCENARIO_ASSERT"  envDefault:"true"`
	Verbose    bool   `env:"CRUCIBLE_SCENARIO_VERBOSE"`
	Seed       string `env:"CRUCIBLE_SCENARIO_SEED"`
	EventLimit int    `env:"CRUCIBLE_SCENARIO_EVENT_LIMIT"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed crit and direct rolls (empty for the deterministic baseline)")
	fs.IntVar(&cfg.EventLimit, "event-limit", cfg.EventLimit, "cap on processed events per run (0 for the default)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	runCfg := scenario.DefaultConfig()
	if !cfg.Assertions {
		runCfg.Assertions = scenario.AssertionLogOnly
	}
	runCfg.Verbose = cfg.Verbose
	runCfg.Logger = log.New(errOut, "", 0)
	if cfg.EventLimit > 0 {
		runCfg.EventLimit = cfg.EventLimit
	}
	if cfg.Seed != "" {
		seed, err := strconv.ParseInt(cfg.Seed, 10, 64)
		if err != nil {
			return fmt.Errorf("parse seed: %w", err)
		}
		runCfg.Seeded = true
		runCfg.Seed = seed
	}

	result, err := scenario.RunFile(ctx, runCfg, cfg.Scenario)
	if err != nil {
		return err
	}
	writeResult(out, result)
	return nil
}

// writeResult prints the run summary: clock, totals, per-actor damage,
// and any expectations a log-only run left unmet.
func writeResult(out io.Writer, result *scenario.Result) {
	fmt.Fprintf(out, "scenario %s: %dms, %d damage, %.1f dps\n",
		result.Name, result.Report.Duration, result.Report.TotalDamage, result.Report.DPS)
	for _, actor := range result.Report.Actors {
		fmt.Fprintf(out, "  %s (%s): %d damage, %.1f dps\n", actor.Name, actor.Job, actor.TotalDamage, actor.DPS)
		for _, action := range actor.Actions {
			fmt.Fprintf(out, "    %s: %d hits, %d damage, max %d\n", action.Name, action.Hits, action.TotalDamage, action.MaxHit)
		}
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(out, "  unmet: %s\n", failure)
	}
}
