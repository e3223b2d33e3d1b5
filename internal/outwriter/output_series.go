package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/internal/parquet"
	"github.com/huangsam/ensoview/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSeriesResults outputs a built series, dispatching based on the output format configured.
func WriteSeriesResults(series *schema.Series, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, series)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesCSV(w, series, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteSeriesParquet(parquet.ConvertSeries(series), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesTable(w, series, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeSeriesTable generates and writes the human-readable table.
func writeSeriesTable(w io.Writer, series *schema.Series, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Date", strings.ToUpper(string(series.Index)), "Phase"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, series.Len())
	for i, p := range series.Points {
		data = append(data, []string{
			strconv.Itoa(i),
			p.Date,
			fmtFloat(p.Value),
			contract.GetColorLabel(p.Label, p.Phase, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	counts := countPhases(series)
	if _, err := fmt.Fprintf(w, "%s: %d points from %s (%s: %d, %s: %d, %s: %d)\n",
		series.Title, series.Len(), series.Origin,
		labelOf(series, schema.PhaseA), counts[schema.PhaseA],
		labelOf(series, schema.PhaseB), counts[schema.PhaseB],
		schema.NeutralLabel, counts[schema.PhaseNeutral]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Thresholds: %s / %s. Y range: [%s, %s]. Ticks: %s\n",
		fmtFloat(series.ThresholdPositive), fmtFloat(series.ThresholdNegative),
		fmtFloat(series.Axis.YMin), fmtFloat(series.Axis.YMax), tickLabels(series.Axis.Ticks)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Built in %v. Dropped rows: %d. Collapsed duplicates: %d\n",
		duration, series.Dropped, series.Collapsed); err != nil {
		return err
	}
	return nil
}

// writeSeriesCSV writes one CSV row per point.
func writeSeriesCSV(w io.Writer, series *schema.Series, fmtFloat func(float64) string) error {
	header := []string{"index", "date", "year", "month", "value", "phase", "label", "color"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range series.Points {
			row := []string{
				string(series.Index),
				p.Date,
				strconv.Itoa(p.Period.Year),
				strconv.Itoa(int(p.Period.Month)),
				fmtFloat(p.Value),
				string(p.Phase),
				p.Label,
				string(p.Color),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func countPhases(series *schema.Series) map[schema.Phase]int {
	counts := make(map[schema.Phase]int, 3)
	for _, p := range series.Points {
		counts[p.Phase]++
	}
	return counts
}

// labelOf finds the label a series uses for phase, falling back to the phase name.
func labelOf(series *schema.Series, phase schema.Phase) string {
	if spec, err := schema.LookupSpec(series.Index); err == nil {
		return spec.Label(phase)
	}
	return string(phase)
}

func tickLabels(ticks []schema.TickMark) string {
	if len(ticks) == 0 {
		return "none"
	}
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = t.Label
	}
	return strings.Join(labels, ", ")
}
