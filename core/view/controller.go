// Package view binds a selected position in a series to the chart marker and the summary panel.
package view

import (
	"fmt"

	"github.com/huangsam/ensoview/schema"
	"github.com/shopspring/decimal"
)

// MarkerTrace is the trace index of the selection marker in a figure.
const MarkerTrace = 1

// Summary describes the selected point for display.
type Summary struct {
	Position  int          `json:"position"`
	Date      string       `json:"date"`
	Year      int          `json:"year"`
	Month     int          `json:"month"`
	Title     string       `json:"title"`
	Value     float64      `json:"value"`
	ValueText string       `json:"value_text"`
	Phase     schema.Phase `json:"phase"`
	Label     string       `json:"label"`
	Color     schema.Color `json:"color"`
}

// PeriodText formats the period the way the summary panel shows it.
func (s Summary) PeriodText() string {
	return fmt.Sprintf("%d년 %d월", s.Year, s.Month)
}

// Text renders the summary as plain text.
func (s Summary) Text() string {
	return fmt.Sprintf("📅 %s %s: %s ⇒ %s", s.PeriodText(), s.Title, s.ValueText, s.Label)
}

// Update is the full visual state produced by a selection change.
type Update struct {
	Position int                `json:"position"`
	Marker   schema.MarkerPatch `json:"marker"`
	Summary  Summary            `json:"summary"`
}

// Controller owns the selected position of one series.
// It is replaced, not reset, when the series changes.
type Controller struct {
	series   *schema.Series
	selected int
}

// NewController selects the most recent point of series.
func NewController(series *schema.Series) (*Controller, error) {
	if series == nil || series.Len() == 0 {
		var kind schema.IndexKind
		if series != nil {
			kind = series.Index
		}
		return nil, &schema.EmptySeriesError{Index: kind}
	}
	return &Controller{series: series, selected: series.Last()}, nil
}

// Series returns the bound series.
func (c *Controller) Series() *schema.Series {
	return c.series
}

// Selected returns the current position.
func (c *Controller) Selected() int {
	return c.selected
}

// Current returns the visual state of the current position.
func (c *Controller) Current() Update {
	return UpdateFor(c.series, c.selected)
}

// Move handles a drag event. The position is clamped to the series bounds and the
// returned update fully replaces any previous visual state.
func (c *Controller) Move(pos int) Update {
	c.selected = Clamp(pos, c.series.Len())
	return c.Current()
}

// UpdateFor builds the marker patch and summary of position idx, which must be valid.
func UpdateFor(series *schema.Series, idx int) Update {
	return Update{
		Position: idx,
		Marker:   MarkerFor(series, idx),
		Summary:  SummaryFor(series, idx),
	}
}

// MarkerFor returns the data-only patch that moves the marker to position idx.
// The marker spans the full planned y-range.
func MarkerFor(series *schema.Series, idx int) schema.MarkerPatch {
	date := series.Points[idx].Date
	return schema.MarkerPatch{
		Update: schema.MarkerUpdate{
			X: [][]string{{date, date}},
			Y: [][]float64{{series.Axis.YMin, series.Axis.YMax}},
		},
		Traces: []int{MarkerTrace},
	}
}

// SummaryFor describes position idx, which must be valid.
func SummaryFor(series *schema.Series, idx int) Summary {
	p := series.Points[idx]
	return Summary{
		Position:  idx,
		Date:      p.Date,
		Year:      p.Period.Year,
		Month:     int(p.Period.Month),
		Title:     series.Title,
		Value:     p.Value,
		ValueText: FormatSigned(p.Value, 2),
		Phase:     p.Phase,
		Label:     p.Label,
		Color:     p.Color,
	}
}

// FormatSigned formats v with an explicit sign for non-negative values.
// Halves round away from zero, and values rounding to zero print as "+0".
func FormatSigned(v float64, precision int) string {
	d := decimal.NewFromFloat(v).Round(int32(precision))
	if d.IsNegative() {
		return d.StringFixed(int32(precision))
	}
	return "+" + d.Abs().StringFixed(int32(precision))
}

// Clamp bounds pos to [0, n-1]. n must be positive.
func Clamp(pos, n int) int {
	return max(0, min(pos, n-1))
}

// FromEnd turns a negative position into an offset from the end (-1 is the last point)
// and clamps the result.
func FromEnd(pos, n int) int {
	if pos < 0 {
		pos += n
	}
	return Clamp(pos, n)
}
