package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/ensoview/internal/contract"
	mcp_internal "github.com/huangsam/ensoview/internal/mcp"
	"github.com/huangsam/ensoview/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oniSource serves a short ONI table; other indices are missing.
type oniSource struct{}

func (oniSource) Load(_ context.Context, spec schema.IndexSourceSpec) (schema.RawTable, error) {
	if spec.Kind != schema.ONI {
		return schema.RawTable{}, &schema.SourceMissingError{Index: spec.Kind, Searched: spec.Candidates}
	}
	return schema.RawTable{
		Fields: []string{"YR", "MON", "DATA"},
		Records: []schema.RawRecord{
			{"YR": "1997", "MON": "10", "DATA": "2.1"},
			{"YR": "1997", "MON": "11", "DATA": "2.4"},
			{"YR": "1997", "MON": "12", "DATA": "2.3"},
		},
		Origin: "elnino_data.csv",
	}, nil
}

func call(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(&contract.Config{Index: schema.ONI}, oniSource{})
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestListIndices(t *testing.T) {
	res := call(t, "list_indices", nil)
	require.False(t, res.IsError)

	var specs []schema.IndexSourceSpec
	require.NoError(t, json.Unmarshal([]byte(text(res)), &specs))
	require.Len(t, specs, 3)
	assert.Equal(t, schema.ONI, specs[0].Kind)
}

func TestGetSeries(t *testing.T) {
	res := call(t, "get_series", map[string]any{"index": "oni"})
	require.False(t, res.IsError, text(res))

	var series schema.Series
	require.NoError(t, json.Unmarshal([]byte(text(res)), &series))
	assert.Len(t, series.Points, 3)
	assert.Equal(t, "El Niño", series.Points[0].Label)
}

func TestGetSeriesLast(t *testing.T) {
	res := call(t, "get_series", map[string]any{"index": "oni", "last": 2.0})
	require.False(t, res.IsError)

	var series schema.Series
	require.NoError(t, json.Unmarshal([]byte(text(res)), &series))
	require.Len(t, series.Points, 2)
	assert.Equal(t, "1997-11-01", series.Points[0].Date)
	// The axis is planned over the returned points only.
	assert.InDelta(t, 2.1, series.Axis.YMin, 1e-9)
	assert.InDelta(t, 2.6, series.Axis.YMax, 1e-9)
}

func TestSelectPoint(t *testing.T) {
	t.Run("defaults to latest", func(t *testing.T) {
		res := call(t, "select_point", map[string]any{"index": "oni"})
		require.False(t, res.IsError)
		assert.Contains(t, text(res), `"position": 2`)
		assert.Contains(t, text(res), "1997년 12월 ONI (SST anomalies): +2.30 ⇒ El Niño")
	})

	t.Run("by position", func(t *testing.T) {
		res := call(t, "select_point", map[string]any{"index": "oni", "position": 0.0})
		require.False(t, res.IsError)
		assert.Contains(t, text(res), `"date": "1997-10-01"`)
	})

	t.Run("by date", func(t *testing.T) {
		res := call(t, "select_point", map[string]any{"index": "oni", "date": "1997-11"})
		require.False(t, res.IsError)
		assert.Contains(t, text(res), `"position": 1`)
	})
}

func TestToolErrors(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"missing index", "get_series", map[string]any{}, "index is required"},
		{"unknown index", "get_series", map[string]any{"index": "enso"}, "unknown index 'enso'"},
		{"missing source", "get_series", map[string]any{"index": "soi"}, "SOI source not found"},
		{"negative last", "get_series", map[string]any{"index": "oni", "last": -1.0}, "last must not be negative"},
		{"bad date", "select_point", map[string]any{"index": "oni", "date": "1997/11"}, "expected YYYY-MM"},
		{"date out of range", "select_point", map[string]any{"index": "oni", "date": "2001-01"}, "no point for 2001-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, text(res), tt.want)
		})
	}
}
