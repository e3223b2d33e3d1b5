package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/ensoview/schema"
)

const utf8BOM = "\ufeff"

// ReadCSV reads a header row followed by data rows.
// Short rows leave their trailing fields absent and extra cells are ignored.
// A repeated header name keeps the cell of its first column.
func ReadCSV(r io.Reader) (schema.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return schema.RawTable{}, fmt.Errorf("empty CSV: no header row")
	}
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	table := schema.RawTable{Fields: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.RawTable{}, fmt.Errorf("error reading CSV record: %w", err)
		}

		record := make(schema.RawRecord, len(header))
		for i, field := range header {
			if i >= len(row) {
				break
			}
			if _, seen := record[field]; seen {
				continue // first column of a repeated name wins
			}
			record[field] = row[i]
		}
		table.Records = append(table.Records, record)
	}
	return table, nil
}
