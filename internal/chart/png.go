package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/ensoview/core/view"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNG colors matching the HTML figure.
var (
	dodgerBlue = drawing.Color{R: 30, G: 144, B: 255, A: 255}
	markerRed  = drawing.ColorRed
	refGray    = drawing.Color{R: 128, G: 128, B: 128, A: 255}
)

// PNGRenderer draws a static image of the figure.
type PNGRenderer struct {
	Width  int
	Height int
}

var _ contract.ChartRenderer = PNGRenderer{} // Compile-time check

// NewPNGRenderer builds a renderer from the validated config.
func NewPNGRenderer(cfg *contract.Config) PNGRenderer {
	return PNGRenderer{Width: cfg.ChartWidth, Height: cfg.ChartHeight}
}

// Render implements contract.ChartRenderer.
func (r PNGRenderer) Render(w io.Writer, series *schema.Series, selected int) error {
	if series == nil || series.Len() == 0 {
		return emptySeries(series)
	}

	ch := r.build(series, view.Clamp(selected, series.Len()))
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render PNG chart: %w", err)
	}
	return nil
}

func (r PNGRenderer) build(series *schema.Series, idx int) gochart.Chart {
	n := series.Len()
	times := make([]time.Time, n)
	values := make([]float64, n)
	for i, p := range series.Points {
		times[i] = p.Period.Time()
		values[i] = RoundValue(p.Value)
	}
	first, last := times[0], times[n-1]
	if n == 1 {
		// go-chart needs a non-zero x-range
		first = first.AddDate(0, -1, 0)
		last = last.AddDate(0, 1, 0)
	}

	selectedAt := series.Points[idx].Period.Time()
	summary := view.SummaryFor(series, idx)

	ticks := make([]gochart.Tick, 0, len(series.Axis.Ticks))
	for _, t := range series.Axis.Ticks {
		ticks = append(ticks, gochart.Tick{Value: gochart.TimeToFloat64(t.Period.Time()), Label: t.Label})
	}
	var xTicks []gochart.Tick
	if len(ticks) > 0 {
		xTicks = ticks
	}

	ch := gochart.Chart{
		Title:      fmt.Sprintf("%s %s: %s => %s", summary.Date[:7], series.Title, summary.ValueText, summary.Label),
		Width:      r.width(),
		Height:     r.height(),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 60, Right: 60, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  "Year",
			Range: &gochart.ContinuousRange{Min: gochart.TimeToFloat64(first), Max: gochart.TimeToFloat64(last)},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Name:  series.YAxisLabel,
			Range: &gochart.ContinuousRange{Min: series.Axis.YMin, Max: series.Axis.YMax},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    series.Title,
				Style:   gochart.Style{StrokeColor: dodgerBlue, StrokeWidth: 2},
				XValues: times,
				YValues: values,
			},
			gochart.TimeSeries{
				Name:    "selected",
				Style:   gochart.Style{StrokeColor: markerRed, StrokeWidth: 2, StrokeDashArray: []float64{4, 4}},
				XValues: []time.Time{selectedAt, selectedAt},
				YValues: []float64{series.Axis.YMin, series.Axis.YMax},
			},
			gochart.TimeSeries{
				Name:    "zero",
				Style:   gochart.Style{StrokeColor: refGray, StrokeWidth: 1, StrokeDashArray: []float64{2, 3}},
				XValues: []time.Time{first, last},
				YValues: []float64{0, 0},
			},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch
}

func (r PNGRenderer) width() int {
	if r.Width > 0 {
		return r.Width
	}
	return contract.DefaultChartWidth
}

func (r PNGRenderer) height() int {
	if r.Height > 0 {
		return r.Height
	}
	return contract.DefaultChartHeight
}

// RendererFor picks the renderer of the configured chart format.
func RendererFor(cfg *contract.Config) contract.ChartRenderer {
	if cfg.ChartFormat == schema.PNGChart {
		return NewPNGRenderer(cfg)
	}
	return NewHTMLRenderer(cfg)
}
