package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/ensoview/core"
	"github.com/huangsam/ensoview/core/algo"
	"github.com/huangsam/ensoview/core/view"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.TabularSource
}

func (h *toolHandler) handleListIndices(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	specs := schema.AllSpecs()
	for i, spec := range specs {
		effective, err := h.baseCfg.Spec(spec.Kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		specs[i] = effective
	}
	jsonData, _ := json.MarshalIndent(specs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	last := request.GetInt("last", 0)
	if last < 0 {
		return mcp.NewToolResultError("last must not be negative"), nil
	}

	series, err := h.load(ctx, cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load series: %v", err)), nil
	}
	if last > 0 && last < series.Len() {
		trimmed := *series
		trimmed.Points = series.Points[series.Len()-last:]
		trimmed.Axis = algo.PlanAxis(trimmed.Points)
		series = &trimmed
	}

	jsonData, _ := json.MarshalIndent(series, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSelectPoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	series, err := h.load(ctx, cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load series: %v", err)), nil
	}

	ctrl, err := view.NewController(series)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pos := view.FromEnd(request.GetInt("position", -1), series.Len())
	if date := strings.TrimSpace(request.GetString("date", "")); date != "" {
		idx, err := positionOf(series, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		pos = idx
	}

	update := ctrl.Move(pos)
	result := struct {
		view.Update
		Text string `json:"text"`
	}{update, update.Summary.Text()}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) load(ctx context.Context, cfg *contract.Config, request mcp.CallToolRequest) (*schema.Series, error) {
	kind := schema.IndexKind(strings.ToLower(strings.TrimSpace(request.GetString("index", ""))))
	if kind == "" {
		return nil, fmt.Errorf("index is required")
	}
	return core.LoadSeries(core.WithSuppressHeader(ctx), cfg, kind, h.src)
}

// positionOf finds the point of a YYYY-MM month.
func positionOf(series *schema.Series, month string) (int, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, fmt.Errorf("invalid date '%s': expected YYYY-MM", month)
	}
	want := schema.PeriodOf(t)
	for i, p := range series.Points {
		if p.Period == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s has no point for %s", series.Title, month)
}
