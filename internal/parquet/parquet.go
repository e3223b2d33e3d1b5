// Package parquet exports classified index series to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/ensoview/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesPoint is one classified point of an index series.
type SeriesPoint struct {
	// Index is the lower-case index selector (oni, soi, olr)
	Index string `parquet:"index,snappy,dict"`

	// Period is the first day of the observation month (stored as TIMESTAMP)
	Period time.Time `parquet:"period,snappy"`

	// Year and Month repeat the period for engines without timestamp support
	Year  int32 `parquet:"year,snappy"`
	Month int32 `parquet:"month,snappy"`

	// Value is the raw index value
	Value float64 `parquet:"value,snappy"`

	// Phase is A, B or neutral
	Phase string `parquet:"phase,snappy,dict"`

	// Label is the display label of the phase
	Label string `parquet:"label,snappy,dict"`

	// Color is the display color of the phase
	Color string `parquet:"color,snappy,dict"`

	// Origin is where the source table was read from (nullable)
	Origin *string `parquet:"origin,optional,snappy,dict"`
}

// ConvertSeries flattens a series into Parquet rows.
func ConvertSeries(series *schema.Series) []SeriesPoint {
	var origin *string
	if series.Origin != "" {
		o := series.Origin
		origin = &o
	}

	result := make([]SeriesPoint, len(series.Points))
	for i, p := range series.Points {
		result[i] = SeriesPoint{
			Index:  string(series.Index),
			Period: p.Period.Time(),
			Year:   int32(p.Period.Year),
			Month:  int32(p.Period.Month),
			Value:  p.Value,
			Phase:  string(p.Phase),
			Label:  p.Label,
			Color:  string(p.Color),
			Origin: origin,
		}
	}
	return result
}

// WriteSeriesParquet writes a slice of SeriesPoint structs to a Parquet file.
func WriteSeriesParquet(data []SeriesPoint, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the SeriesPoint struct tags
	writer := parquet.NewGenericWriter[SeriesPoint](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
