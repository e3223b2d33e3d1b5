package algo

import (
	"strconv"
	"time"

	"github.com/huangsam/ensoview/schema"
)

// Axis planning constants.
const (
	YPadding         = 0.2 // Absolute padding added below the minimum and above the maximum
	TickYearInterval = 5   // Ticks fall on January of years divisible by this
)

// PlanAxis computes the y-range and the sparse x ticks of a series.
// An empty input yields a zero plan; a short series may have no ticks.
func PlanAxis(points []schema.CanonicalPoint) schema.AxisPlan {
	if len(points) == 0 {
		return schema.AxisPlan{Ticks: []schema.TickMark{}}
	}

	lo, hi := points[0].Value, points[0].Value
	ticks := []schema.TickMark{}
	for _, p := range points {
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
		if IsTickPeriod(p.Period) {
			ticks = append(ticks, schema.TickMark{
				Period: p.Period,
				Date:   p.Period.Date(),
				Label:  strconv.Itoa(p.Period.Year),
			})
		}
	}

	return schema.AxisPlan{
		YMin:  lo - YPadding,
		YMax:  hi + YPadding,
		Ticks: ticks,
	}
}

// IsTickPeriod reports whether a period carries an x-axis tick.
func IsTickPeriod(p schema.Period) bool {
	return p.Month == time.January && p.Year%TickYearInterval == 0
}
