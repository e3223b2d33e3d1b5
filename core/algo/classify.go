// Package algo holds the classification and axis planning rules.
package algo

import (
	"github.com/huangsam/ensoview/schema"
)

// Classify maps a value to its phase under the index thresholds and sign convention.
// Both thresholds are inclusive: a value equal to a threshold is never Neutral.
func Classify(value float64, spec schema.IndexSourceSpec) schema.Phase {
	high := value >= spec.Thresholds.Positive
	low := value <= spec.Thresholds.Negative

	switch spec.Convention {
	case schema.LowIsWarm:
		switch {
		case low:
			return schema.PhaseA
		case high:
			return schema.PhaseB
		}
	default:
		switch {
		case high:
			return schema.PhaseA
		case low:
			return schema.PhaseB
		}
	}
	return schema.PhaseNeutral
}

// ClassifyPoint builds the canonical point of one observation.
func ClassifyPoint(obs schema.Observation, spec schema.IndexSourceSpec) schema.CanonicalPoint {
	phase := Classify(obs.Value, spec)
	return schema.CanonicalPoint{
		Period: obs.Period,
		Date:   obs.Period.Date(),
		Value:  obs.Value,
		Phase:  phase,
		Label:  spec.Label(phase),
		Color:  schema.ColorOf(phase),
	}
}

// ClassifyAll classifies observations in order.
func ClassifyAll(observations []schema.Observation, spec schema.IndexSourceSpec) []schema.CanonicalPoint {
	points := make([]schema.CanonicalPoint, len(observations))
	for i, obs := range observations {
		points[i] = ClassifyPoint(obs, spec)
	}
	return points
}
