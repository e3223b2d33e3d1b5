// Package core wires the index pipeline (resolve, normalize, classify, plan) to its outputs.
package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/ensoview/core/resolve"
	"github.com/huangsam/ensoview/core/view"
	"github.com/huangsam/ensoview/internal/chart"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/internal/outwriter"
	"github.com/huangsam/ensoview/internal/sourcedb"
	"github.com/huangsam/ensoview/internal/tabular"
	"github.com/huangsam/ensoview/schema"
)

// ExecutorFunc defines the function signature for executing the series commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, src contract.TabularSource) error

// ExecuteIndices lists the registered index kinds with their effective thresholds.
func ExecuteIndices(_ context.Context, cfg *contract.Config) error {
	specs := schema.AllSpecs()
	for i, spec := range specs {
		effective, err := cfg.Spec(spec.Kind)
		if err != nil {
			return err
		}
		specs[i] = effective
	}
	return outwriter.WriteIndices(specs, cfg)
}

// ExecuteSeries builds the configured index and prints its canonical points.
func ExecuteSeries(ctx context.Context, cfg *contract.Config, src contract.TabularSource) error {
	start := time.Now()
	series, err := LoadSeries(ctx, cfg, cfg.Index, src)
	if err != nil {
		return err
	}
	return outwriter.WriteSeriesResults(series, cfg, time.Since(start))
}

// ExecuteSelect moves the selection to cfg.At and prints the resulting marker and summary.
func ExecuteSelect(ctx context.Context, cfg *contract.Config, src contract.TabularSource) error {
	series, err := LoadSeries(ctx, cfg, cfg.Index, src)
	if err != nil {
		return err
	}
	ctrl, err := view.NewController(series)
	if err != nil {
		return err
	}
	update := ctrl.Move(view.FromEnd(cfg.At, series.Len()))
	return outwriter.WriteSelection(update, series.Len(), cfg)
}

// ExecuteRender draws the configured index as an HTML page or a PNG image.
func ExecuteRender(ctx context.Context, cfg *contract.Config, src contract.TabularSource) error {
	series, err := LoadSeries(ctx, cfg, cfg.Index, src)
	if err != nil {
		return err
	}
	if cfg.ChartFormat == schema.PNGChart && cfg.OutputFile == "" {
		return fmt.Errorf("png charts require --output-file")
	}
	selected := view.FromEnd(cfg.At, series.Len())
	return outwriter.WriteChart(series, selected, chart.RendererFor(cfg), cfg)
}

// ExecuteIngest reads cfg.IngestFrom and stores it as the source of cfg.Index.
// The header is validated before anything is written.
func ExecuteIngest(ctx context.Context, cfg *contract.Config, store contract.SourceStore) error {
	if cfg.IngestFrom == "" {
		return fmt.Errorf("--from is required")
	}
	if store == nil {
		return fmt.Errorf("ingest requires a database source backend (received %s)", cfg.SourceBackend)
	}
	spec, err := cfg.Spec(cfg.Index)
	if err != nil {
		return err
	}

	table, err := tabular.ReadFile(ctx, cfg.IngestFrom)
	if err != nil {
		return err
	}
	if _, err := resolve.Fields(table.Fields, spec); err != nil {
		return err
	}

	rows, err := store.Ingest(ctx, spec.Kind, table)
	if err != nil {
		return fmt.Errorf("failed to ingest %s: %w", cfg.IngestFrom, err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "📥 Ingested %d rows of %s from %s into %s\n", rows, strings.ToUpper(string(spec.Kind)), cfg.IngestFrom, cfg.SourceBackend)
	return nil
}

// ExecuteSourceStatus prints the ingested sources held by the store.
func ExecuteSourceStatus(ctx context.Context, cfg *contract.Config, store contract.SourceStore) error {
	if store == nil {
		return fmt.Errorf("status requires a database source backend (received %s)", cfg.SourceBackend)
	}
	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get source status: %w", err)
	}
	return sourcedb.WriteSourceStatus(os.Stdout, status)
}

// logSeriesHeader prints where the series is read from.
func logSeriesHeader(ctx context.Context, spec schema.IndexSourceSpec, cfg *contract.Config) {
	if shouldSuppressHeader(ctx) || cfg.Output == schema.JSONOut {
		return
	}
	from := cfg.SourcePath
	if cfg.SourceBackend.IsSQL() {
		from = string(cfg.SourceBackend)
	} else if from == "" {
		from = cfg.DataDir
	}
	_, _ = fmt.Fprintf(os.Stderr, "🔎 ensoview: Loading %s from %s\n", spec.Title, from)
}

// droppedRows is reported as a warning, not returned.
type droppedRows struct {
	count  int
	origin string
}

func (d *droppedRows) Error() string {
	return fmt.Sprintf("%d rows of %s had an unparseable period or value", d.count, d.origin)
}
