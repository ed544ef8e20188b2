// Package simulate parses simulate command flags and replays one
// scenario across many seeded iterations, aggregating the damage
// reports into a distribution summary.
package simulate

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	entrypoint "github.com/louisbranch/crucible/internal/platform/cmd"
	"github.com/louisbranch/crucible/internal/random"
	"github.com/louisbranch/crucible/internal/tools/scenario"

	// Job kits register themselves on import.
	_ "github.com/louisbranch/crucible/internal/systems/blade"
	_ "github.com/louisbranch/crucible/internal/systems/ember"
)

// Config holds simulate command configuration.
type Config struct {
	Scenario   string `env:"CRUCIBLE_SIMULATE_FILE"`
	Iterations int    `env:"CRUCIBLE_SIMULATE_ITERATIONS" envDefault:"1000"`
	Workers    int    `env:"CRUCIBLE_SIMULATE_WORKERS"    envDefault:"4"`
	Seed       string `env:"CRUCIBLE_SIMULATE_SEED"`
	EventLimit int    `env:"CRUCIBLE_SIMULATE_EVENT_LIMIT"`
	Verbose    bool   `env:"CRUCIBLE_SIMULATE_VERBOSE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "number of seeded runs")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent runs")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "base seed; run i uses seed+i (empty for a random base)")
	fs.IntVar(&cfg.EventLimit, "event-limit", cfg.EventLimit, "cap on processed events per run (0 for the default)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log per-run steps and unmet expectations")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Summary aggregates a batch of runs. Expectations run log-only, so a
// run with unmet expectations still contributes its report; Unmet
// counts such runs.
type Summary struct {
	Scenario   string
	Iterations int
	BaseSeed   int64
	MeanDPS    float64
	MinDPS     float64
	MaxDPS     float64
	MeanDamage float64
	Unmet      int
}

// Run executes the simulate command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSimulate, func(ctx context.Context) error {
		summary, err := simulate(ctx, cfg, errOut)
		if err != nil {
			return err
		}
		writeSummary(out, summary)
		return nil
	})
}

// simulate loads the scenario once and replays it Iterations times on
// a bounded worker pool, run i seeded with base+i.
func simulate(ctx context.Context, cfg Config, errOut io.Writer) (*Summary, error) {
	if cfg.Scenario == "" {
		return nil, errors.New("scenario path is required")
	}
	if cfg.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.Iterations {
		workers = cfg.Iterations
	}

	scn, err := scenario.LoadScenarioFromFile(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	baseSeed, err := resolveSeed(cfg.Seed)
	if err != nil {
		return nil, err
	}

	tracer := otel.Tracer("simulate")
	ctx, span := tracer.Start(ctx, "simulate.batch", trace.WithAttributes(
		attribute.String("scenario", scn.Name),
		attribute.Int("iterations", cfg.Iterations),
		attribute.Int64("seed", baseSeed),
	))
	defer span.End()

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(errOut, "", 0)
	}

	results := make([]*scenario.Result, cfg.Iterations)
	errs := make([]error, cfg.Iterations)
	iterations := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range iterations {
				runCfg := scenario.DefaultConfig()
				runCfg.Assertions = scenario.AssertionLogOnly
				runCfg.Seeded = true
				runCfg.Seed = baseSeed + int64(i)
				runCfg.Verbose = cfg.Verbose
				runCfg.Logger = logger
				if cfg.EventLimit > 0 {
					runCfg.EventLimit = cfg.EventLimit
				}
				results[i], errs[i] = scenario.NewRunner(runCfg).RunScenario(ctx, scn)
			}
		}()
	}

feed:
	for i := 0; i < cfg.Iterations; i++ {
		select {
		case iterations <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(iterations)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i+1, err)
		}
	}

	summary := &Summary{Scenario: scn.Name, Iterations: cfg.Iterations, BaseSeed: baseSeed}
	var totalDPS, totalDamage float64
	for i, result := range results {
		dps := result.Report.DPS
		if i == 0 || dps < summary.MinDPS {
			summary.MinDPS = dps
		}
		if i == 0 || dps > summary.MaxDPS {
			summary.MaxDPS = dps
		}
		totalDPS += dps
		totalDamage += float64(result.Report.TotalDamage)
		if len(result.Failures) > 0 {
			summary.Unmet++
		}
	}
	summary.MeanDPS = totalDPS / float64(cfg.Iterations)
	summary.MeanDamage = totalDamage / float64(cfg.Iterations)
	span.SetAttributes(attribute.Float64("dps.mean", summary.MeanDPS))
	return summary, nil
}

// resolveSeed parses the configured base seed, or draws one from
// crypto/rand when unset.
func resolveSeed(value string) (int64, error) {
	if value == "" {
		return random.NewSeed()
	}
	seed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse seed: %w", err)
	}
	return seed, nil
}

func writeSummary(out io.Writer, s *Summary) {
	fmt.Fprintf(out, "scenario %s: %d iterations, base seed %d\n", s.Scenario, s.Iterations, s.BaseSeed)
	fmt.Fprintf(out, "  dps: mean %.1f, min %.1f, max %.1f\n", s.MeanDPS, s.MinDPS, s.MaxDPS)
	fmt.Fprintf(out, "  damage: mean %.1f\n", s.MeanDamage)
	if s.Unmet > 0 {
		fmt.Fprintf(out, "  expectations unmet in %d/%d runs\n", s.Unmet, s.Iterations)
	}
}
