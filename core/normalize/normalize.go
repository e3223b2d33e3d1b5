// Package normalize turns raw tabular records into an ordered (period, value) sequence.
package normalize

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/ensoview/core/resolve"
	"github.com/huangsam/ensoview/schema"
)

// dateLayouts are tried in order. Only year and month of the parsed date are kept.
// Numeric slash dates are month first.
var dateLayouts = []string{
	"2006-1-2",
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/1/2",
	"2006-1",
	"2006/1",
	"1/2/2006",
}

// PeriodRule extracts the period of one record.
type PeriodRule func(rec schema.RawRecord) (schema.Period, bool)

// DateRule parses the period from a single date field.
func DateRule(field string) PeriodRule {
	return func(rec schema.RawRecord) (schema.Period, bool) {
		raw, ok := rec[field]
		if !ok {
			return schema.Period{}, false
		}
		return ParseDate(raw)
	}
}

// YearMonthRule composes the period from separate year and month fields.
func YearMonthRule(yearField, monthField string) PeriodRule {
	return func(rec schema.RawRecord) (schema.Period, bool) {
		year, ok := rec[yearField]
		if !ok {
			return schema.Period{}, false
		}
		month, ok := rec[monthField]
		if !ok {
			return schema.Period{}, false
		}
		return ComposePeriod(year, month)
	}
}

// RuleFor picks the period rule matching a resolution.
func RuleFor(res resolve.Resolution) PeriodRule {
	if res.Split() {
		return YearMonthRule(res.Year, res.Month)
	}
	return DateRule(res.Date)
}

// Result is the output of Normalize.
type Result struct {
	Observations []schema.Observation
	Dropped      int // Rows without a valid period or value
	Collapsed    int // Rows replaced by a later row for the same period
}

// Normalize extracts one observation per usable record, sorts them by period and
// collapses duplicate periods so the row appearing last in the source wins.
// Unusable rows are counted, never reported as errors.
func Normalize(table schema.RawTable, res resolve.Resolution) Result {
	return NormalizeWith(table.Records, RuleFor(res), res.Value)
}

// NormalizeWith is Normalize with an explicit period rule.
func NormalizeWith(records []schema.RawRecord, rule PeriodRule, valueField string) Result {
	var result Result
	observations := make([]schema.Observation, 0, len(records))

	for _, rec := range records {
		period, ok := rule(rec)
		if !ok {
			result.Dropped++
			continue
		}
		raw, ok := rec[valueField]
		if !ok {
			result.Dropped++
			continue
		}
		value, ok := ParseValue(raw)
		if !ok {
			result.Dropped++
			continue
		}
		observations = append(observations, schema.Observation{Period: period, Value: value})
	}

	// Stable so that equal periods keep source order for the collapse below.
	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].Period.Before(observations[j].Period)
	})

	collapsed := observations[:0]
	for _, obs := range observations {
		if n := len(collapsed); n > 0 && collapsed[n-1].Period == obs.Period {
			collapsed[n-1] = obs
			result.Collapsed++
			continue
		}
		collapsed = append(collapsed, obs)
	}
	result.Observations = collapsed
	return result
}

// ParseDate parses a calendar date cell into its period.
func ParseDate(raw string) (schema.Period, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return schema.Period{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return schema.PeriodOf(t), true
		}
	}
	return schema.Period{}, false
}

// ComposePeriod builds a period from year and month cells.
// Integral decimals such as "1950.0" are accepted.
func ComposePeriod(rawYear, rawMonth string) (schema.Period, bool) {
	year, ok := parseIntegral(rawYear)
	if !ok || year < 1 || year > 9999 {
		return schema.Period{}, false
	}
	month, ok := parseIntegral(rawMonth)
	if !ok || month < 1 || month > 12 {
		return schema.Period{}, false
	}
	return schema.NewPeriod(year, time.Month(month)), true
}

// ParseValue parses a finite decimal number.
func ParseValue(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseIntegral(raw string) (int, bool) {
	v, ok := ParseValue(raw)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}
