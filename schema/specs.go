package schema

import (
	"fmt"
	"math"
	"sort"
)

// PeriodFields names the split year/month fields of sources that do not carry a single date column.
type PeriodFields struct {
	YearAliases  []string `json:"year_aliases"`
	MonthAliases []string `json:"month_aliases"`
}

// Thresholds is the (positive, negative) boundary pair of an index.
type Thresholds struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// Validate checks positive >= 0 >= negative with both bounds finite.
func (t Thresholds) Validate() error {
	if math.IsInf(t.Positive, 0) || math.IsInf(t.Negative, 0) || !(t.Positive >= 0) || !(t.Negative <= 0) {
		return fmt.Errorf("thresholds must satisfy positive >= 0 >= negative (received %g, %g)", t.Positive, t.Negative)
	}
	return nil
}

// IndexSourceSpec is the static descriptor of one index kind.
type IndexSourceSpec struct {
	Kind         IndexKind     `json:"index"`
	Candidates   []string      `json:"candidates"`
	DateAliases  []string      `json:"date_aliases,omitempty"`
	PeriodFields *PeriodFields `json:"period_fields,omitempty"`
	ValueAliases []string      `json:"value_aliases"`
	Thresholds   Thresholds    `json:"thresholds"`
	Convention   Convention    `json:"convention"`
	LabelA       string        `json:"label_a"`
	LabelB       string        `json:"label_b"`
	Title        string        `json:"title"`
	YAxisLabel   string        `json:"y_axis_label"`
}

// NeutralLabel is shared by every index kind.
const NeutralLabel = "Neutral"

// Label returns the display label of a phase for this index.
func (s IndexSourceSpec) Label(p Phase) string {
	switch p {
	case PhaseA:
		return s.LabelA
	case PhaseB:
		return s.LabelB
	default:
		return NeutralLabel
	}
}

// SplitPeriod reports whether the period is composed from year and month fields.
func (s IndexSourceSpec) SplitPeriod() bool {
	return s.PeriodFields != nil
}

// WithThresholds returns a copy with thresholds replaced by t.
func (s IndexSourceSpec) WithThresholds(t Thresholds) IndexSourceSpec {
	s.Thresholds = t
	return s
}

var registry = map[IndexKind]IndexSourceSpec{
	ONI: {
		Kind:       ONI,
		Candidates: []string{"elnino_data.csv"},
		PeriodFields: &PeriodFields{
			YearAliases:  []string{"YR"},
			MonthAliases: []string{"MON"},
		},
		ValueAliases: []string{"DATA"},
		Thresholds:   Thresholds{Positive: 0.5, Negative: -0.5},
		Convention:   HighIsWarm,
		LabelA:       "El Niño",
		LabelB:       "La Niña",
		Title:        "ONI (SST anomalies)",
		YAxisLabel:   "SST anomalies (°C)",
	},
	SOI: {
		Kind:         SOI,
		Candidates:   []string{"soi_data.csv", "/mnt/data/soi_data.csv"},
		DateAliases:  []string{"date"},
		ValueAliases: []string{"soi", "data", "value"},
		Thresholds:   Thresholds{Positive: 0.7, Negative: -0.7},
		Convention:   LowIsWarm,
		LabelA:       "El Niño",
		LabelB:       "La Niña",
		Title:        "SOI",
		YAxisLabel:   "SOI (standardized)",
	},
	OLR: {
		Kind:         OLR,
		Candidates:   []string{"olr_data.csv"},
		DateAliases:  []string{"date"},
		ValueAliases: []string{"olr", "data", "value"},
		Thresholds:   Thresholds{Positive: 1.0, Negative: -1.0},
		Convention:   HighIsWarm,
		LabelA:       "positive anomaly",
		LabelB:       "negative anomaly",
		Title:        "OLR (provisional)",
		YAxisLabel:   "OLR anomaly",
	},
}

// LookupSpec returns the registered spec for kind, or an UnknownIndexError.
func LookupSpec(kind IndexKind) (IndexSourceSpec, error) {
	spec, ok := registry[kind]
	if !ok {
		return IndexSourceSpec{}, &UnknownIndexError{Index: string(kind), Known: KnownIndexNames()}
	}
	return spec, nil
}

// AllSpecs returns every registered spec in display order.
func AllSpecs() []IndexSourceSpec {
	specs := make([]IndexSourceSpec, 0, len(AllIndexKinds))
	for _, kind := range AllIndexKinds {
		specs = append(specs, registry[kind])
	}
	return specs
}

// KnownIndexNames returns the sorted names of all registered index kinds.
func KnownIndexNames() []string {
	names := make([]string, 0, len(registry))
	for kind := range registry {
		names = append(names, string(kind))
	}
	sort.Strings(names)
	return names
}
