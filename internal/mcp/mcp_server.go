// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/myimpact/impact/internal/contract"
)

// NewMCPServer initializes and configures the Impact MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.ActivityClient, store contract.ReportStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Impact Activity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		store:   store,
	}

	// --- 1. Tool: generate_report ---
	s.AddTool(mcp.NewTool("generate_report",
		mcp.WithDescription("Fetch merged and reviewed pull requests for a date window and compute activity analytics."),
		mcp.WithString("start", mcp.Description("Window start date (YYYY-MM-DD). Defaults to six months ago.")),
		mcp.WithString("end", mcp.Description("Window end date (YYYY-MM-DD). Defaults to today.")),
		mcp.WithString("org", mcp.Description("Restrict to one GitHub organization. Omit for all organizations.")),
	), h.handleGenerateReport)

	// --- 2. Tool: compare_periods ---
	s.AddTool(mcp.NewTool("compare_periods",
		mcp.WithDescription("Compare merged, reviewed, and repository counts between two date windows."),
		mcp.WithString("start", mcp.Description("Current window start date (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("end", mcp.Description("Current window end date (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("compare_start", mcp.Description("Comparison window start date. Defaults to the period immediately before the current window.")),
		mcp.WithString("compare_end", mcp.Description("Comparison window end date.")),
		mcp.WithString("org", mcp.Description("Restrict to one GitHub organization.")),
	), h.handleComparePeriods)

	// --- 3. Tool: list_reports ---
	s.AddTool(mcp.NewTool("list_reports",
		mcp.WithDescription("List the saved activity reports in the reports store."),
	), h.handleListReports)

	return s
}

// StartMCPServer starts the Impact MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.ActivityClient, store contract.ReportStore) error {
	s := NewMCPServer(baseCfg, client, store)
	return server.ServeStdio(s)
}
