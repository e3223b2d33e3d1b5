package core

import (
	"context"

	"github.com/huangsam/ensoview/core/algo"
	"github.com/huangsam/ensoview/core/normalize"
	"github.com/huangsam/ensoview/core/resolve"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/internal/tabular"
	"github.com/huangsam/ensoview/schema"
)

// BuildSeries loads the source of spec and turns it into a classified series with its axis plan.
// Errors are the typed schema errors of the failing stage.
func BuildSeries(ctx context.Context, spec schema.IndexSourceSpec, src contract.TabularSource) (*schema.Series, error) {
	table, err := src.Load(ctx, spec)
	if err != nil {
		return nil, err
	}

	res, err := resolve.Fields(table.Fields, spec)
	if err != nil {
		return nil, err
	}

	norm := normalize.Normalize(table, res)
	if len(norm.Observations) == 0 {
		return nil, &schema.EmptySeriesError{Index: spec.Kind, Origin: table.Origin, Dropped: norm.Dropped}
	}

	points := algo.ClassifyAll(norm.Observations, spec)
	return &schema.Series{
		Index:             spec.Kind,
		Title:             spec.Title,
		YAxisLabel:        spec.YAxisLabel,
		ThresholdPositive: spec.Thresholds.Positive,
		ThresholdNegative: spec.Thresholds.Negative,
		Points:            points,
		Axis:              algo.PlanAxis(points),
		Origin:            table.Origin,
		Dropped:           norm.Dropped,
		Collapsed:         norm.Collapsed,
	}, nil
}

// LoadSeries builds the series of kind using the thresholds configured in cfg.
func LoadSeries(ctx context.Context, cfg *contract.Config, kind schema.IndexKind, src contract.TabularSource) (*schema.Series, error) {
	spec, err := cfg.Spec(kind)
	if err != nil {
		return nil, err
	}
	logSeriesHeader(ctx, spec, cfg)
	series, err := BuildSeries(ctx, spec, src)
	if err != nil {
		return nil, err
	}
	if series.Dropped > 0 && !shouldSuppressHeader(ctx) {
		contract.LogWarn("Skipped unparseable rows", &droppedRows{count: series.Dropped, origin: series.Origin})
	}
	return series, nil
}

// SourceFor picks where tables are read from: the ingested store for SQL backends,
// the filesystem otherwise.
func SourceFor(cfg *contract.Config, store contract.SourceStore) contract.TabularSource {
	if cfg.SourceBackend.IsSQL() && store != nil {
		return store
	}
	return tabular.NewFileSource(cfg)
}
