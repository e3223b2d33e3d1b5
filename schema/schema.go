// Package schema defines the data model shared by every ensoview package.
package schema

import (
	"fmt"
	"time"
)

// RawRecord is one row of named cells from a tabular source.
// A field that is absent from the map is treated as a missing cell.
type RawRecord map[string]string

// RawTable is a tabular source as produced by a reader.
type RawTable struct {
	Fields  []string    // Header in source order, untrimmed
	Records []RawRecord // Rows in source order
	Origin  string      // Where the table came from (path or table name)
}

// Period is a calendar year-month.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod builds a period from a year and a month number.
func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Key returns a monotonic integer key for ordering.
func (p Period) Key() int {
	return p.Year*12 + int(p.Month) - 1
}

// Before reports whether p is earlier than o.
func (p Period) Before(o Period) bool {
	return p.Key() < o.Key()
}

// Time returns the first instant of the period in UTC.
func (p Period) Time() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Date formats the period as the first day of the month (YYYY-MM-DD).
func (p Period) Date() string {
	return p.Time().Format(DateLayout)
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// DateLayout is the wire format for period dates in chart payloads.
const DateLayout = "2006-01-02"

// Observation is a normalized (period, value) pair before classification.
type Observation struct {
	Period Period
	Value  float64
}

// CanonicalPoint is one classified point of a series.
type CanonicalPoint struct {
	Period Period  `json:"-"`
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Phase  Phase   `json:"phase"`
	Label  string  `json:"label"`
	Color  Color   `json:"color"`
}

// TickMark is one labeled x-axis tick.
type TickMark struct {
	Period Period `json:"-"`
	Date   string `json:"date"`
	Label  string `json:"label"`
}

// AxisPlan holds the derived chart bounds of a series.
type AxisPlan struct {
	YMin  float64    `json:"y_min"`
	YMax  float64    `json:"y_max"`
	Ticks []TickMark `json:"ticks"`
}

// Series is an immutable, chronologically ordered canonical series and its metadata.
type Series struct {
	Index             IndexKind        `json:"index"`
	Title             string           `json:"title"`
	YAxisLabel        string           `json:"y_axis_label"`
	ThresholdPositive float64          `json:"threshold_positive"`
	ThresholdNegative float64          `json:"threshold_negative"`
	Points            []CanonicalPoint `json:"points"`
	Axis              AxisPlan         `json:"axis"`
	Origin            string           `json:"origin"`
	Dropped           int              `json:"dropped_rows"`
	Collapsed         int              `json:"collapsed_duplicates"`
}

// Len returns the number of points.
func (s *Series) Len() int {
	return len(s.Points)
}

// Last returns the index of the most recent point, or -1 for an empty series.
func (s *Series) Last() int {
	return len(s.Points) - 1
}
