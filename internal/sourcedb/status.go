package sourcedb

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/ensoview/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteSourceStatus writes source store status information.
func WriteSourceStatus(w io.Writer, status schema.SourceStatus) error {
	_, _ = fmt.Fprintf(w, "Source Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Total Cells: %d\n", status.CellCount)
	if len(status.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "No sources ingested")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Index", "Rows", "Fields", "Loaded", "Origin"})
	data := make([][]string, 0, len(status.Entries))
	for _, e := range status.Entries {
		data = append(data, []string{
			strings.ToUpper(string(e.Index)),
			strconv.Itoa(e.Rows),
			strings.Join(e.Fields, ","),
			e.LoadedAt.Format("2006-01-02 15:04:05"),
			e.Origin,
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("error adding table data: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("error rendering table: %w", err)
	}
	return nil
}
