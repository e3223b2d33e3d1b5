package algo

import (
	"testing"
	"time"

	"github.com/huangsam/ensoview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, kind schema.IndexKind) schema.IndexSourceSpec {
	t.Helper()
	spec, err := schema.LookupSpec(kind)
	require.NoError(t, err)
	return spec
}

func TestClassifyHighIsWarm(t *testing.T) {
	oni := mustSpec(t, schema.ONI)

	tests := []struct {
		name     string
		value    float64
		expected schema.Phase
	}{
		{"strong warm", 2.5, schema.PhaseA},
		{"exactly positive threshold", 0.5, schema.PhaseA},
		{"just below positive threshold", 0.49, schema.PhaseNeutral},
		{"zero", 0, schema.PhaseNeutral},
		{"just above negative threshold", -0.49, schema.PhaseNeutral},
		{"exactly negative threshold", -0.5, schema.PhaseB},
		{"strong cold", -1.8, schema.PhaseB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.value, oni))
		})
	}
}

func TestClassifyLowIsWarm(t *testing.T) {
	soi := mustSpec(t, schema.SOI)

	tests := []struct {
		name     string
		value    float64
		expected schema.Phase
	}{
		{"strongly negative is warm", -2.0, schema.PhaseA},
		{"exactly negative threshold", -0.7, schema.PhaseA},
		{"neutral band", 0.3, schema.PhaseNeutral},
		{"exactly positive threshold", 0.7, schema.PhaseB},
		{"strongly positive is cold", 1.9, schema.PhaseB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.value, soi))
		})
	}
}

func TestClassifyDegenerateThresholds(t *testing.T) {
	spec := mustSpec(t, schema.OLR).WithThresholds(schema.Thresholds{Positive: 0, Negative: 0})

	// Zero touches both boundaries; the high side is checked first.
	assert.Equal(t, schema.PhaseA, Classify(0, spec))
	assert.Equal(t, schema.PhaseB, Classify(-0.01, spec))
}

func TestClassifyAll(t *testing.T) {
	oni := mustSpec(t, schema.ONI)
	observations := []schema.Observation{
		{Period: schema.NewPeriod(2015, time.December), Value: 2.5},
		{Period: schema.NewPeriod(2016, time.January), Value: 2.3},
	}

	points := ClassifyAll(observations, oni)

	require.Len(t, points, 2)
	for _, p := range points {
		assert.Equal(t, schema.PhaseA, p.Phase)
		assert.Equal(t, "El Niño", p.Label)
		assert.Equal(t, schema.ColorRed, p.Color)
	}
	assert.Equal(t, "2015-12-01", points[0].Date)
}

func TestClassifyPointLabels(t *testing.T) {
	olr := mustSpec(t, schema.OLR)

	neg := ClassifyPoint(schema.Observation{Period: schema.NewPeriod(2000, time.June), Value: -1.2}, olr)
	assert.Equal(t, "negative anomaly", neg.Label)
	assert.Equal(t, schema.ColorBlue, neg.Color)

	neutral := ClassifyPoint(schema.Observation{Period: schema.NewPeriod(2000, time.July), Value: 0.2}, olr)
	assert.Equal(t, schema.NeutralLabel, neutral.Label)
	assert.Equal(t, schema.ColorBlack, neutral.Color)
}
