// Package tabular reads index sources from local CSV and Parquet files.
package tabular

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
)

// FileSource loads index tables from the filesystem.
type FileSource struct {
	DataDir  string // Directory that relative candidates are resolved against
	Override string // Explicit path that replaces every candidate when set
}

var _ contract.TabularSource = &FileSource{} // Compile-time check

// NewFileSource builds a FileSource from the validated config.
func NewFileSource(cfg *contract.Config) *FileSource {
	return &FileSource{DataDir: cfg.DataDir, Override: cfg.SourcePath}
}

// Load reads the first existing candidate of spec.
func (s *FileSource) Load(ctx context.Context, spec schema.IndexSourceSpec) (schema.RawTable, error) {
	path, err := s.Locate(spec)
	if err != nil {
		return schema.RawTable{}, err
	}
	return ReadFile(ctx, path)
}

// Locate returns the first candidate of spec that exists as a regular file.
func (s *FileSource) Locate(spec schema.IndexSourceSpec) (string, error) {
	candidates := contract.CandidatePaths(spec, s.DataDir, s.Override)
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", &schema.SourceMissingError{
		Index:    spec.Kind,
		Searched: candidates,
		Guidance: s.guidance(spec),
	}
}

func (s *FileSource) guidance(spec schema.IndexSourceSpec) string {
	if s.Override != "" {
		return "check the --source path"
	}
	name := filepath.Base(spec.Candidates[0])
	return fmt.Sprintf("place %s under %s or pass --source", name, s.DataDir)
}

// ReadFile reads a table from path, choosing the reader by file extension.
// Anything that is not .parquet is read as CSV.
func ReadFile(ctx context.Context, path string) (schema.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return schema.RawTable{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("failed to open source %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var table schema.RawTable
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		info, statErr := f.Stat()
		if statErr != nil {
			return schema.RawTable{}, fmt.Errorf("failed to stat source %s: %w", path, statErr)
		}
		table, err = ReadParquet(f, info.Size())
	} else {
		table, err = ReadCSV(f)
	}
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("failed to read source %s: %w", path, err)
	}
	table.Origin = path
	return table, nil
}
