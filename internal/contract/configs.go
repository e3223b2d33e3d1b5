package contract

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/ensoview/schema"
)

// Default values for configuration.
const (
	DefaultDataDir     = "data"
	DefaultPrecision   = 2
	MaxPrecision       = 3
	DefaultChartWidth  = 1100
	DefaultChartHeight = 440
	DefaultAddr        = ":8080"
	DefaultCacheTTL    = 5 * time.Minute
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// LogConfig holds server logging settings.
type LogConfig struct {
	Level       string
	Encoding    string // json or console
	Development bool
}

// ThresholdRaw holds one index's threshold overrides from the YAML config file.
type ThresholdRaw struct {
	Positive *float64 `mapstructure:"positive"`
	Negative *float64 `mapstructure:"negative"`
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	Index           schema.IndexKind
	SourcePath      string // Explicit file override; empty means search the index candidates
	DataDir         string
	SourceBackend   schema.DatabaseBackend
	SourceDBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	At          int // Selected position; negative counts from the end
	ChartFormat schema.ChartFormat
	ChartWidth  int
	ChartHeight int

	Addr     string
	CacheTTL time.Duration
	Log      LogConfig

	IngestFrom string

	// Thresholds holds per-index overrides of the registered threshold pairs.
	Thresholds map[schema.IndexKind]schema.Thresholds
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Index           string `mapstructure:"index"`
	Source          string `mapstructure:"source"`
	DataDir         string `mapstructure:"data-dir"`
	SourceBackend   string `mapstructure:"source-backend"`
	SourceDBConnect string `mapstructure:"source-db-connect"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	ThresholdsStr   string `mapstructure:"thresholds-override"`

	// --- Fields from selectCmd / renderCmd flags ---
	At          int    `mapstructure:"at"`
	Format      string `mapstructure:"format"`
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`

	// --- Fields from serveCmd.Flags() ---
	Addr        string `mapstructure:"addr"`
	CacheTTL    string `mapstructure:"cache-ttl"`
	LogLevel    string `mapstructure:"log-level"`
	LogEncoding string `mapstructure:"log-encoding"`
	LogDev      bool   `mapstructure:"log-dev"`

	// --- Fields from sourceIngestCmd.Flags() ---
	From string `mapstructure:"from"`

	// --- Threshold overrides from config file ---
	Thresholds map[string]ThresholdRaw `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Thresholds != nil {
		clone.Thresholds = make(map[schema.IndexKind]schema.Thresholds, len(c.Thresholds))
		maps.Copy(clone.Thresholds, c.Thresholds)
	}
	return &clone
}

// Spec returns the registered spec of kind with any configured threshold override applied.
func (c *Config) Spec(kind schema.IndexKind) (schema.IndexSourceSpec, error) {
	spec, err := schema.LookupSpec(kind)
	if err != nil {
		return spec, err
	}
	if t, ok := c.Thresholds[kind]; ok {
		spec = spec.WithThresholds(t)
	}
	return spec, nil
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processChartInputs(cfg, input); err != nil {
		return err
	}
	if err := processServeInputs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.FileBackend, schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend validates a backend name.
func ParseBackend(s string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(s)))
	if backend == "" {
		return schema.FileBackend, nil
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid source backend '%s'. must be file, sqlite, mysql, postgresql", s)
	}
	return backend, nil
}

// validateBackendConfig validates the source backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseBackend(input.SourceBackend)
	if err != nil {
		return err
	}
	cfg.SourceBackend = backend
	cfg.SourceDBConnect = input.SourceDBConnect
	return ValidateDatabaseConnectionString(cfg.SourceBackend, cfg.SourceDBConnect)
}

// validateSimpleInputs processes and validates the index, source and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.SourcePath = strings.TrimSpace(input.Source)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.At = input.At
	cfg.IngestFrom = input.From

	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Index Validation ---
	cfg.Index = schema.IndexKind(strings.ToLower(strings.TrimSpace(input.Index)))
	if _, err := schema.LookupSpec(cfg.Index); err != nil {
		return err
	}

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processChartInputs validates chart rendering options.
func processChartInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ChartFormat = schema.ChartFormat(strings.ToLower(input.Format))
	if cfg.ChartFormat == "" {
		cfg.ChartFormat = schema.HTMLChart
	}
	if _, ok := schema.ValidChartFormats[cfg.ChartFormat]; !ok {
		return fmt.Errorf("invalid chart format '%s'. must be html, png", input.Format)
	}

	cfg.ChartWidth = input.ChartWidth
	if cfg.ChartWidth == 0 {
		cfg.ChartWidth = DefaultChartWidth
	}
	cfg.ChartHeight = input.ChartHeight
	if cfg.ChartHeight == 0 {
		cfg.ChartHeight = DefaultChartHeight
	}
	if cfg.ChartWidth < 200 || cfg.ChartHeight < 150 {
		return fmt.Errorf("chart size must be at least 200x150 (received %dx%d)", cfg.ChartWidth, cfg.ChartHeight)
	}
	return nil
}

// processServeInputs validates HTTP server options.
func processServeInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl '%s': %w", input.CacheTTL, err)
		}
		if ttl < 0 {
			return fmt.Errorf("cache-ttl cannot be negative (received %s)", ttl)
		}
		cfg.CacheTTL = ttl
	}

	cfg.Log = LogConfig{
		Level:       strings.ToLower(input.LogLevel),
		Encoding:    strings.ToLower(input.LogEncoding),
		Development: input.LogDev,
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	switch cfg.Log.Encoding {
	case "":
		cfg.Log.Encoding = "json"
	case "json", "console":
	default:
		return fmt.Errorf("invalid log-encoding '%s'. must be json, console", input.LogEncoding)
	}
	return nil
}

// processThresholds merges config-file and flag threshold overrides into cfg.Thresholds.
// The --thresholds-override flag takes precedence over the config file.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := make(map[schema.IndexKind]schema.Thresholds)

	for name, raw := range input.Thresholds {
		kind := schema.IndexKind(strings.ToLower(name))
		spec, err := schema.LookupSpec(kind)
		if err != nil {
			return fmt.Errorf("invalid thresholds section: %w", err)
		}
		t := spec.Thresholds
		if raw.Positive != nil {
			t.Positive = *raw.Positive
		}
		if raw.Negative != nil {
			t.Negative = *raw.Negative
		}
		thresholds[kind] = t
	}

	if input.ThresholdsStr != "" {
		parsed, err := ParseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	for kind, t := range thresholds {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("index %s: %w", kind, err)
		}
	}

	cfg.Thresholds = thresholds
	return nil
}

// ParseThresholdsString parses "oni:0.5:-0.5,soi:0.8:-0.8".
func ParseThresholdsString(s string) (map[schema.IndexKind]schema.Thresholds, error) {
	result := make(map[schema.IndexKind]schema.Thresholds)
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("expected index:positive:negative, got '%s'", part)
		}
		kind := schema.IndexKind(strings.ToLower(strings.TrimSpace(fields[0])))
		if _, err := schema.LookupSpec(kind); err != nil {
			return nil, err
		}
		pos, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid positive threshold for %s: %w", kind, err)
		}
		neg, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid negative threshold for %s: %w", kind, err)
		}
		result[kind] = schema.Thresholds{Positive: pos, Negative: neg}
	}
	return result, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
