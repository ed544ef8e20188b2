package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/crucible/internal/mcp/domain"
	"github.com/louisbranch/crucible/internal/systems"
)

func registerJobTools(mcpServer *mcp.Server, registry *systems.Registry) {
	mcp.AddTool(mcpServer, domain.JobListTool(), domain.JobListHandler(registry))
	mcp.AddTool(mcpServer, domain.JobActionsTool(), domain.JobActionsHandler(registry))
}

func registerScenarioTools(mcpServer *mcp.Server, registry *systems.Registry) {
	mcp.AddTool(mcpServer, domain.ScenarioRunTool(), domain.ScenarioRunHandler(registry))
}

// registerJobResources registers readable job MCP resources.
func registerJobResources(mcpServer *mcp.Server, registry *systems.Registry) {
	mcpServer.AddResource(domain.JobCatalogResource(), domain.JobCatalogResourceHandler(registry))
}
