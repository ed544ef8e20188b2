package scenario

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/encounter"
	apperrors "github.com/louisbranch/crucible/internal/errors"
	"github.com/louisbranch/crucible/internal/systems"
)

// Config controls scenario execution.
type Config struct {
	// Registry resolves job names. Nil selects the default registry.
	Registry *systems.Registry
	// Assertions picks strict or log-only expectation handling.
	Assertions AssertionMode
	// Seeded switches crit and direct hit rolls from the deterministic
	// never-proc baseline to a roller seeded with Seed. A scenario's
	// own seed step overrides both.
	Seeded bool
	Seed   int64
	// EventLimit bounds run steps. Zero selects the encounter default.
	EventLimit int
	Verbose    bool
	Logger     *log.Logger
}

// DefaultConfig returns the default runner configuration: strict
// assertions against a deterministic encounter.
func DefaultConfig() Config {
	return Config{
		Assertions: AssertionStrict,
		EventLimit: encounter.DefaultEventLimit,
	}
}

// Runner executes Lua scenarios against an in-process encounter.
type Runner struct {
	registry   *systems.Registry
	mode       AssertionMode
	logger     *log.Logger
	verbose    bool
	seeded     bool
	seed       int64
	eventLimit int
}

// NewRunner prepares a scenario runner. Config defaults are applied
// here.
func NewRunner(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	registry := cfg.Registry
	if registry == nil {
		registry = systems.DefaultRegistry
	}
	limit := cfg.EventLimit
	if limit <= 0 {
		limit = encounter.DefaultEventLimit
	}
	return &Runner{
		registry:   registry,
		mode:       cfg.Assertions,
		logger:     logger,
		verbose:    cfg.Verbose,
		seeded:     cfg.Seeded,
		seed:       cfg.Seed,
		eventLimit: limit,
	}
}

// Result summarizes one scenario run.
type Result struct {
	Name     string
	Duration timeline.Time
	Report   encounter.Report
	Failures []string
}

// scenarioState is the per-run working set: the encounter under test
// and the name bindings the script has made so far.
type scenarioState struct {
	enc     *encounter.Encounter
	actors  map[string]arena.Handle
	jobs    map[string]systems.Job
	asserts *Assertions
	seeded  bool
	seed    int64
	limit   int
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) (*Result, error) {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewRunner(cfg).RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps in order. The returned error
// carries the failing step's number and kind; a log-only run reports
// unmet expectations through Result.Failures instead. Runs never
// mutate the scenario, so one parsed script can replay concurrently.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, apperrors.New(apperrors.CodeScenarioParse, "scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))

	state := &scenarioState{
		actors:  map[string]arena.Handle{},
		jobs:    map[string]systems.Job{},
		asserts: &Assertions{Mode: r.mode, Logger: r.logger},
		seeded:  r.seeded,
		seed:    r.seed,
		limit:   r.eventLimit,
	}

	for index, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stepNumber := index + 1
		r.logf("step %d/%d: %s", stepNumber, len(scenario.Steps), step.Kind)
		if err := r.runStep(state, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
	}
	r.logf("scenario done: %s", scenario.Name)

	result := &Result{Name: scenario.Name, Failures: state.asserts.Failures()}
	if state.enc != nil {
		result.Duration = state.enc.Time()
		result.Report = state.enc.Report()
	}
	return result, nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
