// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the ensoview MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.TabularSource) *server.MCPServer {
	s := server.NewMCPServer(
		"ENSO Index Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
	}
	indexNames := schema.KnownIndexNames()

	// --- 1. Tool: list_indices ---
	s.AddTool(mcp.NewTool("list_indices",
		mcp.WithDescription("List the supported climate indices with their thresholds and phase labels."),
	), h.handleListIndices)

	// --- 2. Tool: get_series ---
	s.AddTool(mcp.NewTool("get_series",
		mcp.WithDescription("Load a climate index and return its classified monthly series and axis plan."),
		mcp.WithString("index", mcp.Description("Index to load."), mcp.Required(), mcp.Enum(indexNames...)),
		mcp.WithNumber("last", mcp.Description("Only return the most recent N points (0 returns all).")),
	), h.handleGetSeries)

	// --- 3. Tool: select_point ---
	s.AddTool(mcp.NewTool("select_point",
		mcp.WithDescription("Select one month of a climate index and return the marker position and summary."),
		mcp.WithString("index", mcp.Description("Index to load."), mcp.Required(), mcp.Enum(indexNames...)),
		mcp.WithNumber("position", mcp.Description("Zero-based position; negative values count from the end (-1 is the latest month). Defaults to -1.")),
		mcp.WithString("date", mcp.Description("Month to select as YYYY-MM. Overrides position when set.")),
	), h.handleSelectPoint)

	return s
}

// StartMCPServer starts the ensoview MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.TabularSource) error {
	s := NewMCPServer(baseCfg, src)
	return server.ServeStdio(s)
}
