package tabular

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/ensoview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceLoad(t *testing.T) {
	spec, err := schema.LookupSpec(schema.ONI)
	require.NoError(t, err)

	t.Run("first candidate found", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "elnino_data.csv", "YR,MON,DATA\n1990,1,0.25\n")

		src := &FileSource{DataDir: dir}
		table, err := src.Load(context.Background(), spec)
		require.NoError(t, err)
		assert.Equal(t, []string{"YR", "MON", "DATA"}, table.Fields)
		require.Len(t, table.Records, 1)
		assert.Equal(t, "0.25", table.Records[0]["DATA"])
		assert.Equal(t, filepath.Join(dir, "elnino_data.csv"), table.Origin)
	})

	t.Run("override replaces candidates", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "custom.csv", "YR,MON,DATA\n2000,6,-1.1\n")

		src := &FileSource{DataDir: "does-not-exist", Override: path}
		table, err := src.Load(context.Background(), spec)
		require.NoError(t, err)
		assert.Equal(t, path, table.Origin)
	})

	t.Run("missing source", func(t *testing.T) {
		dir := t.TempDir()
		src := &FileSource{DataDir: dir}
		_, err := src.Load(context.Background(), spec)

		var missing *schema.SourceMissingError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, schema.ONI, missing.Index)
		assert.Equal(t, []string{filepath.Join(dir, "elnino_data.csv")}, missing.Searched)
		assert.Contains(t, missing.Guidance, "elnino_data.csv")
	})

	t.Run("directory is not a source", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "elnino_data.csv"), 0o755))
		src := &FileSource{DataDir: dir}
		_, err := src.Load(context.Background(), spec)

		var missing *schema.SourceMissingError
		assert.True(t, errors.As(err, &missing))
	})

	t.Run("cancelled context", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "elnino_data.csv", "YR,MON,DATA\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		src := &FileSource{DataDir: dir}
		_, err := src.Load(ctx, spec)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileSourceSecondCandidate(t *testing.T) {
	dir := t.TempDir()
	second := writeFile(t, dir, "second.csv", "date,soi\n1990-01-01,1.2\n")

	spec := schema.IndexSourceSpec{
		Kind:       schema.SOI,
		Candidates: []string{"first.csv", second},
	}
	src := &FileSource{DataDir: dir}
	path, err := src.Locate(spec)
	require.NoError(t, err)
	assert.Equal(t, second, path)
}
