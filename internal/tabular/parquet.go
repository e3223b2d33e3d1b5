package tabular

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/ensoview/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

const rowBatchSize = 128

// cellFormatter turns a non-null leaf value into the text a CSV source would carry.
type cellFormatter func(parquet.Value) string

// ReadParquet reads the flat leaf columns of a Parquet file.
// Nested column paths are joined with dots. Null cells are left absent.
func ReadParquet(r io.ReaderAt, size int64) (schema.RawTable, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("failed to open parquet: %w", err)
	}

	sch := pf.Schema()
	columns := sch.Columns()
	fields := make([]string, len(columns))
	formatters := make([]cellFormatter, len(columns))
	for i, path := range columns {
		fields[i] = strings.Join(path, ".")
		formatters[i] = formatValue
		if leaf, ok := sch.Lookup(path...); ok {
			formatters[i] = formatterFor(leaf.Node.Type().LogicalType())
		}
	}

	table := schema.RawTable{Fields: fields}
	buf := make([]parquet.Row, rowBatchSize)
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, fields, formatters, buf, &table); err != nil {
			return schema.RawTable{}, err
		}
	}
	return table, nil
}

func readRowGroup(rg parquet.RowGroup, fields []string, formatters []cellFormatter, buf []parquet.Row, table *schema.RawTable) error {
	rows := rg.Rows()
	defer func() { _ = rows.Close() }()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			record := make(schema.RawRecord, len(fields))
			for _, v := range row {
				col := v.Column()
				if v.IsNull() || col < 0 || col >= len(fields) {
					continue
				}
				record[fields[col]] = formatters[col](v)
			}
			table.Records = append(table.Records, record)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}

func formatterFor(lt *format.LogicalType) cellFormatter {
	switch {
	case lt == nil:
		return formatValue
	case lt.Date != nil:
		return formatDate
	case lt.Timestamp != nil:
		unit := time.Nanosecond
		switch {
		case lt.Timestamp.Unit.Millis != nil:
			unit = time.Millisecond
		case lt.Timestamp.Unit.Micros != nil:
			unit = time.Microsecond
		}
		return func(v parquet.Value) string {
			return formatTimestamp(v, unit)
		}
	default:
		return formatValue
	}
}

func formatValue(v parquet.Value) string {
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return ""
	}
}

// formatDate renders a DATE value (days since the Unix epoch).
func formatDate(v parquet.Value) string {
	days := int64(v.Int32())
	return time.Unix(days*86400, 0).UTC().Format(schema.DateLayout)
}

func formatTimestamp(v parquet.Value, unit time.Duration) string {
	ts := time.Unix(0, v.Int64()*int64(unit)).UTC()
	return ts.Format(time.RFC3339)
}
