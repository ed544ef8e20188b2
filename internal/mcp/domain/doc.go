// Package domain defines the MCP tool surface of the simulator: typed
// tool inputs and outputs plus the handlers that bridge tool calls
// onto the in-process engine. Handlers hold no server state; the
// registry they close over resolves jobs and actions by name.
package domain
