package schema

// Custom string types for type safety.
type (
	// IndexKind identifies a climate index source.
	IndexKind string

	// Phase is the classified state of one point.
	Phase string

	// Convention says which side of zero maps to the warm phase.
	Convention string

	// Color is the display color attached to a phase.
	Color string

	// OutputMode represents the format of tabular output.
	OutputMode string

	// ChartFormat represents the format of a rendered chart.
	ChartFormat string

	// DatabaseBackend represents where tabular sources are read from.
	DatabaseBackend string
)

// All index kinds supported.
const (
	ONI IndexKind = "oni" // default
	SOI IndexKind = "soi"
	OLR IndexKind = "olr"
)

// Phases produced by the classifier. A is the warm phase, B the cold one.
const (
	PhaseA       Phase = "A"
	PhaseB       Phase = "B"
	PhaseNeutral Phase = "neutral"
)

// Sign conventions.
const (
	HighIsWarm Convention = "high-warm"
	LowIsWarm  Convention = "low-warm"
)

// Phase colors. These never vary by index kind.
const (
	ColorRed   Color = "red"
	ColorBlue  Color = "blue"
	ColorBlack Color = "black"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All chart formats supported.
const (
	HTMLChart ChartFormat = "html" // default
	PNGChart  ChartFormat = "png"
)

// All source backends supported.
const (
	FileBackend       DatabaseBackend = "file" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// AllIndexKinds lists every index kind in display order.
var AllIndexKinds = []IndexKind{ONI, SOI, OLR}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidChartFormats lists all valid chart formats.
var ValidChartFormats = map[ChartFormat]struct{}{
	HTMLChart: {},
	PNGChart:  {},
}

// ValidDatabaseBackends lists all valid source backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	FileBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// IsSQL reports whether the backend is backed by a SQL database.
func (b DatabaseBackend) IsSQL() bool {
	return b == SQLiteBackend || b == MySQLBackend || b == PostgreSQLBackend
}

// ColorOf returns the fixed display color of a phase.
func ColorOf(p Phase) Color {
	switch p {
	case PhaseA:
		return ColorRed
	case PhaseB:
		return ColorBlue
	default:
		return ColorBlack
	}
}
