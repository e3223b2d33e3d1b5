// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"

	"github.com/huangsam/ensoview/schema"
)

// TabularSource produces the raw table behind an index.
// A source that does not exist must be reported as a *schema.SourceMissingError.
type TabularSource interface {
	Load(ctx context.Context, spec schema.IndexSourceSpec) (schema.RawTable, error)
}

// SourceStore is a database-backed TabularSource.
// This allows the storage layer to be mocked for testing.
type SourceStore interface {
	TabularSource

	// Ingest replaces the stored table of an index and returns the number of rows written.
	Ingest(ctx context.Context, kind schema.IndexKind, table schema.RawTable) (int, error)

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.SourceStatus, error)

	// Ping verifies the connection.
	Ping(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}

// ChartRenderer draws a series with the marker at the selected position.
type ChartRenderer interface {
	Render(w io.Writer, series *schema.Series, selected int) error
}
