// Package cmd defines the command-line interface for ensoview.
package cmd

import (
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(indicesCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the source subcommands to the parent source command
	sourceCmd.AddCommand(sourceIngestCmd)
	sourceCmd.AddCommand(sourceStatusCmd)
	sourceCmd.AddCommand(sourceClearCmd)
	sourceCmd.AddCommand(sourceMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("index", "i", string(schema.ONI), "Climate index: oni or soi or olr")
	rootCmd.PersistentFlags().StringP("source", "s", "", "Explicit source file (CSV or Parquet) replacing the default candidates")
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Directory searched for the default source files")
	rootCmd.PersistentFlags().String("source-backend", string(schema.FileBackend), "Source backend: file or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored phase labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("thresholds-override", "", "Per-index phase thresholds (format: 'oni:0.5:-0.5,soi:0.7:-0.7')")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Local flags are bound to Viper in sharedSetup for the running command
	selectCmd.Flags().Int("at", -1, "Position to select; negative counts from the end (-1 is the latest month)")

	renderCmd.Flags().Int("at", -1, "Initial slider position; negative counts from the end")
	renderCmd.Flags().String("format", string(schema.HTMLChart), "Chart format: html or png")
	renderCmd.Flags().Int("chart-width", contract.DefaultChartWidth, "Chart width in pixels")
	renderCmd.Flags().Int("chart-height", contract.DefaultChartHeight, "Chart height in pixels")

	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address to listen on")
	serveCmd.Flags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long built series are cached (0 disables caching)")
	serveCmd.Flags().Int("chart-width", contract.DefaultChartWidth, "Chart width in pixels")
	serveCmd.Flags().Int("chart-height", contract.DefaultChartHeight, "Chart height in pixels")
	serveCmd.Flags().String("log-level", "info", "Log level: debug or info or warn or error")
	serveCmd.Flags().String("log-encoding", "json", "Log encoding: json or console")
	serveCmd.Flags().Bool("log-dev", false, "Enable development logging")

	sourceIngestCmd.Flags().String("from", "", "CSV or Parquet file to ingest")

	sourceMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}
