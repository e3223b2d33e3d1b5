package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/ensoview/core/algo"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monthlySeries builds a classified SOI series starting in January 1995.
func monthlySeries(t *testing.T, values ...float64) *schema.Series {
	t.Helper()
	spec, err := schema.LookupSpec(schema.SOI)
	require.NoError(t, err)

	obs := make([]schema.Observation, len(values))
	for i, v := range values {
		obs[i] = schema.Observation{Period: schema.NewPeriod(1995+i/12, time.Month(i%12+1)), Value: v}
	}
	points := algo.ClassifyAll(obs, spec)
	return &schema.Series{
		Index:      spec.Kind,
		Title:      spec.Title,
		YAxisLabel: spec.YAxisLabel,
		Points:     points,
		Axis:       algo.PlanAxis(points),
	}
}

func TestBuildFigure(t *testing.T) {
	series := monthlySeries(t, 1.23456, -0.5, 0.25)
	fig := BuildFigure(series, 1)

	require.Len(t, fig.Data, 2)
	value := fig.Data[0]
	assert.Equal(t, "SOI", value.Name)
	assert.Equal(t, []string{"1995-01-01", "1995-02-01", "1995-03-01"}, value.X)
	assert.Equal(t, []float64{1.235, -0.5, 0.25}, value.Y)
	assert.Equal(t, "lines", value.Mode)
	assert.Equal(t, schema.Line{Color: "dodgerblue", Width: 2}, value.Line)

	marker := fig.Data[1]
	assert.Equal(t, []string{"1995-02-01", "1995-02-01"}, marker.X)
	assert.Equal(t, []float64{series.Axis.YMin, series.Axis.YMax}, marker.Y)
	assert.Equal(t, "dot", marker.Line.Dash)
	assert.Equal(t, "skip", marker.HoverInfo)
	assert.False(t, marker.ShowLegend)

	assert.Equal(t, schema.Margin{L: 60, R: 60, T: 10, B: 60}, fig.Layout.Margin)
	assert.Equal(t, 440, fig.Layout.Height)
	assert.Equal(t, "Year", fig.Layout.XAxis.Title.Text)
	assert.Equal(t, "array", fig.Layout.XAxis.TickMode)
	assert.Equal(t, []string{"1995-01-01"}, fig.Layout.XAxis.TickVals)
	assert.Equal(t, []string{"1995"}, fig.Layout.XAxis.TickText)
	assert.Equal(t, "SOI (standardized)", fig.Layout.YAxis.Title.Text)
	assert.Equal(t, []float64{series.Axis.YMin, series.Axis.YMax}, fig.Layout.YAxis.Range)
	require.Len(t, fig.Layout.Shapes, 1)
	assert.Equal(t, "paper", fig.Layout.Shapes[0].XRef)
	assert.Zero(t, fig.Layout.Shapes[0].Y0)
	assert.True(t, fig.Config.Responsive)
}

func TestBuildFigureClampsSelection(t *testing.T) {
	series := monthlySeries(t, 0.1, 0.2)
	assert.Equal(t, []string{"1995-02-01", "1995-02-01"}, BuildFigure(series, 99).Data[1].X)
	assert.Equal(t, []string{"1995-01-01", "1995-01-01"}, BuildFigure(series, -4).Data[1].X)
}

func TestBuildFigureJSONShape(t *testing.T) {
	data, err := json.Marshal(BuildFigure(monthlySeries(t, 0.1), 0))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	layout := decoded["layout"].(map[string]any)
	assert.Equal(t, "simple_white", layout["template"])
	traces := decoded["data"].([]any)
	assert.Equal(t, "skip", traces[1].(map[string]any)["hoverinfo"])
}

func TestRoundValue(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.23456, 1.235},
		{-0.0004, 0},
		{2.5, 2.5},
		{-1.9995, -2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundValue(tt.in), "RoundValue(%v)", tt.in)
	}
}

func TestHTMLRenderer(t *testing.T) {
	series := monthlySeries(t, -1.5, 0.3, 0.9)
	var buf bytes.Buffer
	require.NoError(t, HTMLRenderer{HostWidth: 1100, Height: 440}.Render(&buf, series, 0))

	page := buf.String()
	assert.Contains(t, page, `id="monthSlider" min="0" max="2" value="0"`)
	assert.Contains(t, page, "width:897px; left:50px;")
	assert.Contains(t, page, "Plotly.newPlot")
	assert.Contains(t, page, "plotly_relayout")
	assert.Contains(t, page, `"1995-01-01"`)
	assert.Contains(t, page, "El Ni")
	assert.NotContains(t, page, "<nav")
}

func TestHTMLRendererSummaryMatchesFormatSigned(t *testing.T) {
	series := monthlySeries(t, 0.125, -1.5)
	var buf bytes.Buffer
	require.NoError(t, HTMLRenderer{}.Render(&buf, series, 0))

	page := buf.String()
	assert.Contains(t, page, "0.13")
	assert.NotContains(t, page, "0.12\"")
	assert.Contains(t, page, "1.50")
	assert.NotContains(t, page, "toFixed")
}

func TestHTMLRendererNav(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTMLRenderer{Nav: true}.Render(&buf, monthlySeries(t, 0.1), 0))
	assert.Contains(t, buf.String(), `href="/chart/olr"`)
	assert.Contains(t, buf.String(), "width:1100px")
}

func TestHTMLRendererEscapesTitle(t *testing.T) {
	series := monthlySeries(t, 0.1)
	series.Title = "</script><b>x"
	var buf bytes.Buffer
	require.NoError(t, HTMLRenderer{}.Render(&buf, series, 0))
	assert.NotContains(t, buf.String(), "</script><b>x")
}

func TestRenderersRejectEmptySeries(t *testing.T) {
	empty := &schema.Series{Index: schema.OLR}
	for _, r := range []contract.ChartRenderer{HTMLRenderer{}, PNGRenderer{}} {
		err := r.Render(&bytes.Buffer{}, empty, 0)
		var emptyErr *schema.EmptySeriesError
		require.True(t, errors.As(err, &emptyErr))
		assert.Equal(t, schema.OLR, emptyErr.Index)
	}
}

func TestPNGRenderer(t *testing.T) {
	values := make([]float64, 72)
	for i := range values {
		values[i] = float64(i%12)/4 - 1.5
	}
	series := monthlySeries(t, values...)

	var buf bytes.Buffer
	require.NoError(t, PNGRenderer{Width: 600, Height: 300}.Render(&buf, series, 10))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestPNGRendererSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNGRenderer{}.Render(&buf, monthlySeries(t, 0.4), 0))
	assert.True(t, strings.HasPrefix(buf.String(), "\x89PNG"))
}

func TestRendererFor(t *testing.T) {
	cfg := &contract.Config{ChartFormat: schema.PNGChart, ChartWidth: 800, ChartHeight: 400}
	assert.Equal(t, PNGRenderer{Width: 800, Height: 400}, RendererFor(cfg))

	cfg.ChartFormat = schema.HTMLChart
	assert.Equal(t, HTMLRenderer{HostWidth: 800, Height: 400}, RendererFor(cfg))
}
