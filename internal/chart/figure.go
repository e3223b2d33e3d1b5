// Package chart renders index series as interactive HTML pages and static PNG images.
package chart

import (
	"github.com/huangsam/ensoview/core/view"
	"github.com/huangsam/ensoview/schema"
	"github.com/shopspring/decimal"
)

// Figure styling shared by the HTML and PNG renderers.
const (
	ValueColor     = "dodgerblue"
	MarkerColor    = "red"
	ReferenceColor = "gray"
	FigureHeight   = 440
	valueDecimals  = 3
)

// BuildFigure describes series as a two-trace figure: the value line and the selection marker.
// selected is clamped to the series bounds. The series must not be empty.
func BuildFigure(series *schema.Series, selected int) schema.Figure {
	idx := view.Clamp(selected, series.Len())
	marker := view.MarkerFor(series, idx).Update

	dates := make([]string, series.Len())
	values := make([]float64, series.Len())
	for i, p := range series.Points {
		dates[i] = p.Date
		values[i] = RoundValue(p.Value)
	}

	tickVals := make([]string, len(series.Axis.Ticks))
	tickText := make([]string, len(series.Axis.Ticks))
	for i, t := range series.Axis.Ticks {
		tickVals[i] = t.Date
		tickText[i] = t.Label
	}

	return schema.Figure{
		Data: []schema.Trace{
			{
				Name:       series.Title,
				X:          dates,
				Y:          values,
				Mode:       "lines",
				Line:       schema.Line{Color: ValueColor, Width: 2},
				ShowLegend: true,
			},
			{
				X:         marker.X[0],
				Y:         marker.Y[0],
				Mode:      "lines",
				Line:      schema.Line{Color: MarkerColor, Width: 2, Dash: "dot"},
				HoverInfo: "skip",
			},
		},
		Layout: schema.Layout{
			Margin: schema.Margin{L: 60, R: 60, T: 10, B: 60},
			Height: FigureHeight,
			XAxis: schema.Axis{
				Title:    schema.AxisTitle{Text: "Year"},
				TickMode: "array",
				TickVals: tickVals,
				TickText: tickText,
				ShowLine: true,
				Ticks:    "outside",
			},
			YAxis: schema.Axis{
				Title:    schema.AxisTitle{Text: series.YAxisLabel},
				Range:    []float64{series.Axis.YMin, series.Axis.YMax},
				ShowLine: true,
				Ticks:    "outside",
			},
			Shapes: []schema.Shape{
				{
					Type: "line", XRef: "paper", YRef: "y",
					X0: 0, X1: 1, Y0: 0, Y1: 0,
					Line: schema.Line{Color: ReferenceColor, Width: 1, Dash: "dot"},
				},
			},
			Template:     "simple_white",
			PaperBGColor: "white",
			PlotBGColor:  "white",
			ShowLegend:   true,
		},
		Config: schema.FigureConfig{Responsive: true},
	}
}

// RoundValue rounds a chart value to three decimals.
func RoundValue(v float64) float64 {
	return decimal.NewFromFloat(v).Round(valueDecimals).InexactFloat64()
}
