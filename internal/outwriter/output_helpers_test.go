package outwriter

import (
	"time"

	"github.com/huangsam/ensoview/core/algo"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Index:     schema.ONI,
		DataDir:   "data",
		Output:    schema.TextOut,
		Precision: 2,
		Width:     200,
	}
}

// testSeries builds a small classified ONI series starting in January 1995.
func testSeries(values ...float64) *schema.Series {
	spec, _ := schema.LookupSpec(schema.ONI)
	obs := make([]schema.Observation, len(values))
	for i, v := range values {
		month := time.Month(i%12 + 1)
		obs[i] = schema.Observation{Period: schema.NewPeriod(1995+i/12, month), Value: v}
	}
	points := algo.ClassifyAll(obs, spec)
	return &schema.Series{
		Index:             spec.Kind,
		Title:             spec.Title,
		YAxisLabel:        spec.YAxisLabel,
		ThresholdPositive: spec.Thresholds.Positive,
		ThresholdNegative: spec.Thresholds.Negative,
		Points:            points,
		Axis:              algo.PlanAxis(points),
		Origin:            "data/elnino_data.csv",
	}
}
