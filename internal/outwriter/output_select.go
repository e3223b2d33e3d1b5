package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/ensoview/core/view"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
)

// WriteSelection outputs the visual state of a selected position.
func WriteSelection(update view.Update, total int, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, update)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSelectionCSV(w, update, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for series")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSelectionText(w, update, total, cfg)
		}, "Wrote summary")
	}
}

func writeSelectionText(w io.Writer, update view.Update, total int, cfg *contract.Config) error {
	s := update.Summary
	label := contract.GetColorLabel(s.Label, s.Phase, cfg.UseColors)
	if _, err := fmt.Fprintf(w, "📅 %s %s: %s ⇒ %s\n", s.PeriodText(), s.Title, s.ValueText, label); err != nil {
		return err
	}
	m := update.Marker.Update
	_, err := fmt.Fprintf(w, "Position %d of %d. Marker at %s spanning [%s, %s]\n",
		update.Position, total-1, m.X[0][0],
		view.FormatSigned(m.Y[0][0], cfg.Precision), view.FormatSigned(m.Y[0][1], cfg.Precision))
	return err
}

func writeSelectionCSV(w io.Writer, update view.Update, precision int) error {
	header := []string{"position", "date", "title", "value", "phase", "label", "color"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		s := update.Summary
		return csvWriter.Write([]string{
			strconv.Itoa(s.Position),
			s.Date,
			s.Title,
			view.FormatSigned(s.Value, precision),
			string(s.Phase),
			s.Label,
			string(s.Color),
		})
	})
}
