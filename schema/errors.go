package schema

import (
	"fmt"
	"strings"
)

// SchemaError reports that required fields could not be resolved from a source header.
type SchemaError struct {
	Index   IndexKind
	Missing []string            // Roles that failed to resolve, e.g. "date", "value"
	Aliases map[string][]string // Aliases searched per missing role
	Found   []string            // Field names actually present
}

func (e *SchemaError) Error() string {
	var parts []string
	for _, role := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s field (searched %s)", role, quoteAll(e.Aliases[role])))
	}
	return fmt.Sprintf("%s source columns not recognized: missing %s. found columns: %s",
		strings.ToUpper(string(e.Index)), strings.Join(parts, ", "), quoteAll(e.Found))
}

// SourceMissingError reports that the backing source does not exist.
type SourceMissingError struct {
	Index    IndexKind
	Searched []string // Locations tried, in order
	Guidance string   // How to provide the source
}

func (e *SourceMissingError) Error() string {
	msg := fmt.Sprintf("%s source not found (searched %s)", strings.ToUpper(string(e.Index)), strings.Join(e.Searched, ", "))
	if e.Guidance != "" {
		msg += ". " + e.Guidance
	}
	return msg
}

// EmptySeriesError reports that a source resolved but no usable rows remained.
type EmptySeriesError struct {
	Index   IndexKind
	Origin  string
	Dropped int
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("%s source %s has no usable rows (%d rows dropped as unparseable)",
		strings.ToUpper(string(e.Index)), e.Origin, e.Dropped)
}

// UnknownIndexError reports a selector outside the known set.
type UnknownIndexError struct {
	Index string
	Known []string
}

func (e *UnknownIndexError) Error() string {
	return fmt.Sprintf("unknown index '%s'. must be %s", e.Index, strings.Join(e.Known, ", "))
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
