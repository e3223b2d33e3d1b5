package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/ensoview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name      string
		phase     schema.Phase
		useColors bool
	}{
		{"warm colored", schema.PhaseA, true},
		{"cold colored", schema.PhaseB, true},
		{"neutral colored", schema.PhaseNeutral, true},
		{"warm plain", schema.PhaseA, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel("El Niño", tt.phase, tt.useColors)
			// Should contain the plain label
			assert.Contains(t, result, "El Niño")
		})
	}

	assert.Equal(t, "Neutral", GetColorLabel("Neutral", schema.PhaseNeutral, true))
	assert.Equal(t, "La Niña", GetColorLabel("La Niña", schema.PhaseB, false))
}

func TestPhaseColor(t *testing.T) {
	assert.Same(t, WarmColor, PhaseColor(schema.PhaseA))
	assert.Same(t, ColdColor, PhaseColor(schema.PhaseB))
	assert.Same(t, NeutralColor, PhaseColor(schema.PhaseNeutral))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetDBFilePath(t *testing.T) {
	path := GetDBFilePath()

	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".ensoview_sources.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestCandidatePaths(t *testing.T) {
	soi, err := schema.LookupSpec(schema.SOI)
	require.NoError(t, err)

	paths := CandidatePaths(soi, "data", "")
	assert.Equal(t, []string{filepath.Join("data", "soi_data.csv"), "/mnt/data/soi_data.csv"}, paths)

	override := CandidatePaths(soi, "data", "custom/soi.parquet")
	assert.Equal(t, []string{"custom/soi.parquet"}, override)
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		expected string
	}{
		{"short text", "SOI", 10, "SOI"},
		{"exact width", "abcdef", 6, "abcdef"},
		{"truncated", "OLR (provisional)", 8, "OLR (..."},
		{"width too small", "abcdef", 3, "abcdef"},
		{"multibyte", "El Niño phase", 7, "El N..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
