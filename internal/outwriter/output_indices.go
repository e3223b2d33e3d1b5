package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteIndices outputs the registered index kinds with any configured overrides applied.
func WriteIndices(specs []schema.IndexSourceSpec, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, specs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIndicesCSV(w, specs, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for series")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIndicesTable(w, specs, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeIndicesTable(w io.Writer, specs []schema.IndexSourceSpec, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Index", "Title", "Positive", "Negative", "Convention", "Phase A", "Phase B", "Sources"})

	maxWidth := GetMaxCandidateWidth(cfg)
	data := make([][]string, 0, len(specs))
	for _, spec := range specs {
		data = append(data, []string{
			string(spec.Kind),
			spec.Title,
			fmtFloat(spec.Thresholds.Positive),
			fmtFloat(spec.Thresholds.Negative),
			string(spec.Convention),
			contract.GetColorLabel(spec.LabelA, schema.PhaseA, cfg.UseColors),
			contract.GetColorLabel(spec.LabelB, schema.PhaseB, cfg.UseColors),
			contract.TruncateText(strings.Join(contract.CandidatePaths(spec, cfg.DataDir, ""), ", "), maxWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeIndicesCSV(w io.Writer, specs []schema.IndexSourceSpec, fmtFloat func(float64) string) error {
	header := []string{"index", "title", "positive", "negative", "convention", "label_a", "label_b", "candidates"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, spec := range specs {
			row := []string{
				string(spec.Kind),
				spec.Title,
				fmtFloat(spec.Thresholds.Positive),
				fmtFloat(spec.Thresholds.Negative),
				string(spec.Convention),
				spec.LabelA,
				spec.LabelB,
				strings.Join(spec.Candidates, ";"),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
