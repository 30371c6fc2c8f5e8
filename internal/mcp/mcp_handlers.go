package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/myimpact/impact/core"
	"github.com/myimpact/impact/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.ActivityClient
	store   contract.ReportStore
}

// parseWindowBound parses a YYYY-MM-DD argument. An end bound covers the
// whole day.
func parseWindowBound(value string, isEnd bool) (time.Time, error) {
	t, err := time.Parse(contract.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s'. Expected YYYY-MM-DD", value)
	}
	if isEnd {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}

func (h *toolHandler) handleGenerateReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end := h.baseCfg.StartTime, h.baseCfg.EndTime
	if s := request.GetString("start", ""); s != "" {
		t, err := parseWindowBound(s, false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		start = t
	}
	if e := request.GetString("end", ""); e != "" {
		t, err := parseWindowBound(e, true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end = t
	}
	if start.After(end) {
		return mcp.NewToolResultError("start date cannot be after end date"), nil
	}

	cfg := h.baseCfg.CloneWithTimeWindow(start, end)
	if org := request.GetString("org", ""); org != "" {
		cfg.Org = org
	}

	w := core.NewWorkflow(cfg, h.client, nil, h.store)
	if err := w.GenerateReport(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report generation failed: %v", err)), nil
	}

	stats := core.BuildStats(w.Session.Merged, w.Session.Reviewed)
	jsonData, _ := json.MarshalIndent(stats, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComparePeriods(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startStr := request.GetString("start", "")
	endStr := request.GetString("end", "")
	if startStr == "" || endStr == "" {
		return mcp.NewToolResultError("both start and end are required"), nil
	}

	start, err := parseWindowBound(startStr, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := parseWindowBound(endStr, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if start.After(end) {
		return mcp.NewToolResultError("start date cannot be after end date"), nil
	}

	cfg := h.baseCfg.CloneWithTimeWindow(start, end)
	if org := request.GetString("org", ""); org != "" {
		cfg.Org = org
	}

	compareStartStr := request.GetString("compare_start", "")
	compareEndStr := request.GetString("compare_end", "")
	if (compareStartStr == "") != (compareEndStr == "") {
		return mcp.NewToolResultError("must specify both compare_start and compare_end, or neither"), nil
	}
	if compareStartStr != "" {
		compareStart, err := parseWindowBound(compareStartStr, false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		compareEnd, err := parseWindowBound(compareEndStr, true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.CompareStart = compareStart
		cfg.CompareEnd = compareEnd
	}

	w := core.NewWorkflow(cfg, h.client, nil, h.store)
	result, err := w.Compare(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListReports(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reports, err := h.store.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing reports failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(reports, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
