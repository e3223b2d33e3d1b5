package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/ensoview/schema"
)

// Color variables for console output.
var (
	WarmColor    = color.New(color.FgRed, color.Bold)  // WarmColor marks phase A.
	ColdColor    = color.New(color.FgBlue, color.Bold) // ColdColor marks phase B.
	NeutralColor = color.New(color.Reset)              // NeutralColor leaves neutral text plain.
)

// PhaseColor returns the console color of a phase.
func PhaseColor(phase schema.Phase) *color.Color {
	switch phase {
	case schema.PhaseA:
		return WarmColor
	case schema.PhaseB:
		return ColdColor
	default:
		return NeutralColor
	}
}

// GetColorLabel returns text colored for the phase when colors are enabled.
func GetColorLabel(text string, phase schema.Phase, useColors bool) string {
	if !useColors || phase == schema.PhaseNeutral {
		return text
	}
	return PhaseColor(phase).Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the default SQLite DB file for ingested sources.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ensoview_sources.db"
	}
	return filepath.Join(homeDir, ".ensoview_sources.db")
}

// CandidatePaths expands the source candidates of a spec against dataDir.
// Absolute candidates are kept as-is. An explicit override replaces all candidates.
func CandidatePaths(spec schema.IndexSourceSpec, dataDir, override string) []string {
	if override != "" {
		return []string{override}
	}
	paths := make([]string, 0, len(spec.Candidates))
	for _, c := range spec.Candidates {
		if filepath.IsAbs(c) {
			paths = append(paths, c)
			continue
		}
		paths = append(paths, filepath.Join(dataDir, c))
	}
	return paths
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
