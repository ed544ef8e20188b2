package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/crucible/internal/systems"
)

// JobListInput represents the MCP tool input for listing jobs.
type JobListInput struct{}

// JobEntry describes one registered job.
type JobEntry struct {
	ID      int32  `json:"id" jsonschema:"job identifier"`
	Name    string `json:"name" jsonschema:"job display name"`
	Version string `json:"version" jsonschema:"balance revision"`
	Actions int    `json:"actions" jsonschema:"number of actions in the kit"`
}

// JobListResult represents the MCP tool output for listing jobs.
type JobListResult struct {
	Jobs []JobEntry `json:"jobs" jsonschema:"registered jobs"`
}

// JobListTool describes the job_list MCP tool.
func JobListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "job_list",
		Description: "List the registered combat jobs with their versions and kit sizes.",
	}
}

// JobListHandler lists every registered job, ordered by ID then
// version.
func JobListHandler(registry *systems.Registry) mcp.ToolHandlerFor[JobListInput, JobListResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ JobListInput) (*mcp.CallToolResult, JobListResult, error) {
		jobs := registry.List()
		result := JobListResult{Jobs: make([]JobEntry, 0, len(jobs))}
		for _, job := range jobs {
			result.Jobs = append(result.Jobs, JobEntry{
				ID:      int32(job.ID()),
				Name:    job.Name(),
				Version: job.Version(),
				Actions: len(job.Actions()),
			})
		}
		sort.Slice(result.Jobs, func(i, j int) bool {
			if result.Jobs[i].ID != result.Jobs[j].ID {
				return result.Jobs[i].ID < result.Jobs[j].ID
			}
			return result.Jobs[i].Version < result.Jobs[j].Version
		})
		return nil, result, nil
	}
}

// JobActionsInput represents the MCP tool input for listing a job's
// actions.
type JobActionsInput struct {
	Job string `json:"job" jsonschema:"job display name"`
}

// ActionEntry describes one action of a job.
type ActionEntry struct {
	ID   int32  `json:"id" jsonschema:"action identifier"`
	Name string `json:"name" jsonschema:"action display name"`
}

// JobActionsResult represents the MCP tool output for listing a job's
// actions.
type JobActionsResult struct {
	Job     string        `json:"job" jsonschema:"job display name"`
	Version string        `json:"version" jsonschema:"balance revision"`
	Actions []ActionEntry `json:"actions" jsonschema:"actions in kit order"`
}

// JobActionsTool describes the job_actions MCP tool.
func JobActionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "job_actions",
		Description: "List the actions of one job by its display name.",
	}
}

// JobActionsHandler resolves the named job and returns its action
// catalog.
func JobActionsHandler(registry *systems.Registry) mcp.ToolHandlerFor[JobActionsInput, JobActionsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input JobActionsInput) (*mcp.CallToolResult, JobActionsResult, error) {
		name := strings.TrimSpace(input.Job)
		if name == "" {
			return nil, JobActionsResult{}, fmt.Errorf("job is required")
		}
		job := registry.FindName(name)
		if job == nil {
			return nil, JobActionsResult{}, fmt.Errorf("unknown job %q", name)
		}

		result := JobActionsResult{Job: job.Name(), Version: job.Version()}
		for _, id := range job.Actions() {
			result.Actions = append(result.Actions, ActionEntry{
				ID:   int32(id),
				Name: job.ActionName(id),
			})
		}
		return nil, result, nil
	}
}

// JobCatalogEntry represents a readable job catalog entry.
type JobCatalogEntry struct {
	ID      int32         `json:"id"`
	Name    string        `json:"name"`
	Version string        `json:"version"`
	Actions []ActionEntry `json:"actions"`
}

// JobCatalogPayload represents the MCP resource payload for the job
// catalog.
type JobCatalogPayload struct {
	Jobs []JobCatalogEntry `json:"jobs"`
}

// JobCatalogResource defines the MCP resource for the job catalog.
func JobCatalogResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "job_catalog",
		Title:       "Jobs",
		Description: "Readable catalog of registered jobs and their actions",
		MIMEType:    "application/json",
		URI:         "jobs://catalog",
	}
}

// JobCatalogResourceHandler returns a readable job catalog resource.
func JobCatalogResourceHandler(registry *systems.Registry) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := JobCatalogResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		jobs := registry.List()
		sort.Slice(jobs, func(i, j int) bool {
			if jobs[i].ID() != jobs[j].ID() {
				return jobs[i].ID() < jobs[j].ID()
			}
			return jobs[i].Version() < jobs[j].Version()
		})

		payload := JobCatalogPayload{}
		for _, job := range jobs {
			entry := JobCatalogEntry{
				ID:      int32(job.ID()),
				Name:    job.Name(),
				Version: job.Version(),
			}
			for _, id := range job.Actions() {
				entry.Actions = append(entry.Actions, ActionEntry{
					ID:   int32(id),
					Name: job.ActionName(id),
				})
			}
			payload.Jobs = append(payload.Jobs, entry)
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal job catalog: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
