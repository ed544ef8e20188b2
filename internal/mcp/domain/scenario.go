package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/crucible/internal/systems"
	"github.com/louisbranch/crucible/internal/tools/scenario"
)

// ScenarioRunInput represents the MCP tool input for running a
// scenario. Exactly one of path and source must be set.
type ScenarioRunInput struct {
	Path   string `json:"path,omitempty" jsonschema:"path to a scenario Lua file"`
	Source string `json:"source,omitempty" jsonschema:"inline scenario Lua source"`
	Name   string `json:"name,omitempty" jsonschema:"scenario name for inline source"`
	Seed   *int64 `json:"seed,omitempty" jsonschema:"seed crit and direct hit rolls; omit for the deterministic baseline"`
	Strict *bool  `json:"strict,omitempty" jsonschema:"fail the call on unmet expectations instead of reporting them"`
}

// ScenarioRunResult represents the MCP tool output for a scenario run.
type ScenarioRunResult struct {
	Name        string        `json:"name" jsonschema:"scenario name"`
	DurationMs  int64         `json:"duration_ms" jsonschema:"encounter clock at the end of the run"`
	TotalDamage int64         `json:"total_damage" jsonschema:"damage summed over all sources"`
	DPS         float64       `json:"dps" jsonschema:"damage per second over the encounter clock"`
	Actors      []ActorDamage `json:"actors,omitempty" jsonschema:"per-source damage breakdown"`
	Failures    []string      `json:"failures,omitempty" jsonschema:"unmet expectations from a non-strict run"`
}

// ActorDamage is one source's share of a scenario's damage.
type ActorDamage struct {
	Name        string         `json:"name" jsonschema:"actor name"`
	Job         string         `json:"job,omitempty" jsonschema:"job display name"`
	TotalDamage int64          `json:"total_damage" jsonschema:"damage dealt by this actor"`
	DPS         float64        `json:"dps" jsonschema:"actor damage per second"`
	Actions     []ActionDamage `json:"actions,omitempty" jsonschema:"per-action totals"`
}

// ActionDamage aggregates the hits of one action or periodic effect.
type ActionDamage struct {
	Name        string `json:"name" jsonschema:"action or status display name"`
	Hits        int    `json:"hits" jsonschema:"number of hits"`
	Crits       int    `json:"crits" jsonschema:"critical hits"`
	Directs     int    `json:"directs" jsonschema:"direct hits"`
	TotalDamage int64  `json:"total_damage" jsonschema:"damage summed over all hits"`
	MaxHit      int32  `json:"max_hit" jsonschema:"largest single hit"`
}

// ScenarioRunTool describes the scenario_run MCP tool.
func ScenarioRunTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scenario_run",
		Description: "Run a combat scenario script and return its damage report. Unmet expectations are listed in the result unless strict is set.",
	}
}

// ScenarioRunHandler loads the scenario from a file or inline source
// and executes it against a fresh encounter. Expectations run in
// log-only mode by default so the report always comes back with the
// failures alongside it.
func ScenarioRunHandler(registry *systems.Registry) mcp.ToolHandlerFor[ScenarioRunInput, ScenarioRunResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ScenarioRunInput) (*mcp.CallToolResult, ScenarioRunResult, error) {
		path := strings.TrimSpace(input.Path)
		source := input.Source
		if (path == "") == (source == "") {
			return nil, ScenarioRunResult{}, fmt.Errorf("exactly one of path and source is required")
		}

		var (
			scn *scenario.Scenario
			err error
		)
		if path != "" {
			scn, err = scenario.LoadScenarioFromFile(path)
		} else {
			name := strings.TrimSpace(input.Name)
			if name == "" {
				name = "inline"
			}
			scn, err = scenario.LoadScenarioFromString(name, source)
		}
		if err != nil {
			return nil, ScenarioRunResult{}, err
		}

		cfg := scenario.DefaultConfig()
		cfg.Registry = registry
		cfg.Assertions = scenario.AssertionLogOnly
		if input.Strict != nil && *input.Strict {
			cfg.Assertions = scenario.AssertionStrict
		}
		if input.Seed != nil {
			cfg.Seeded = true
			cfg.Seed = *input.Seed
		}

		result, err := scenario.NewRunner(cfg).RunScenario(ctx, scn)
		if err != nil {
			return nil, ScenarioRunResult{}, err
		}

		out := ScenarioRunResult{
			Name:        result.Name,
			DurationMs:  int64(result.Report.Duration),
			TotalDamage: result.Report.TotalDamage,
			DPS:         result.Report.DPS,
			Failures:    result.Failures,
		}
		for _, actor := range result.Report.Actors {
			ad := ActorDamage{
				Name:        actor.Name,
				Job:         actor.Job,
				TotalDamage: actor.TotalDamage,
				DPS:         actor.DPS,
			}
			for _, action := range actor.Actions {
				ad.Actions = append(ad.Actions, ActionDamage{
					Name:        action.Name,
					Hits:        action.Hits,
					Crits:       action.Crits,
					Directs:     action.Directs,
					TotalDamage: action.TotalDamage,
					MaxHit:      action.MaxHit,
				})
			}
			out.Actors = append(out.Actors, ad)
		}
		return nil, out, nil
	}
}
