package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/ensoview/core"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/internal/sourcedb"
	"github.com/huangsam/ensoview/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sourceBackendSetup loads the minimal configuration needed for source maintenance.
// It validates the backend without running the full sharedSetup.
func sourceBackendSetup(cmd *cobra.Command) (schema.DatabaseBackend, string, error) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return "", "", fmt.Errorf("error binding %s flags: %w", cmd.Name(), err)
	}
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend, err := contract.ParseBackend(viper.GetString("source-backend"))
	if err != nil {
		return "", "", err
	}
	connStr := viper.GetString("source-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	if !backend.IsSQL() {
		return "", "", fmt.Errorf("%s requires a database source backend (received %s)", cmd.CommandPath(), backend)
	}

	cfg.SourceBackend = backend
	cfg.SourceDBConnect = connStr
	return backend, connStr, nil
}

// sourceStoreSetup opens the store after validating the backend.
func sourceStoreSetup(cmd *cobra.Command, _ []string) error {
	backend, connStr, err := sourceBackendSetup(cmd)
	if err != nil {
		return err
	}
	if err := sourcedb.InitSources(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize sources: %w", err)
	}
	return nil
}

// sourceCmd focused on database-backed sources.
//
// Note: status, clear and migrate use minimal initialization instead of
// sharedSetup. Migrate does not even open the store, so it can run against
// a fresh database.
var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage index sources stored in a database",
	Long: `Ingest index tables into SQLite, MySQL or PostgreSQL and read them back
with --source-backend instead of local files.

Subcommands:
  ingest  - Store a CSV or Parquet file as the source of an index
  status  - Show the ingested sources
  clear   - Remove every ingested source
  migrate - Run schema migrations

Examples:
  # Ingest ONI into the default SQLite database
  ensoview source ingest --index oni --from data/elnino_data.csv --source-backend sqlite

  # Read it back
  ensoview series oni --source-backend sqlite`,
}

// sourceIngestCmd stores a file as the source of an index.
var sourceIngestCmd = &cobra.Command{
	Use:   "ingest [index]",
	Short: "Store a CSV or Parquet file as the source of an index",
	Long: `Read a CSV or Parquet file and store every cell in the configured database,
replacing any previous source of the same index.

The header is checked against the index aliases before anything is written,
so a file the pipeline could not read is rejected up front.

Examples:
  ensoview source ingest soi --from soi_data.csv --source-backend sqlite

  # PostgreSQL (set the connection string via env variable)
  ENSOVIEW_SOURCE_BACKEND=postgresql ENSOVIEW_SOURCE_DB_CONNECT="..." ensoview source ingest olr --from olr.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIngest(rootCtx, cfg, sourcedb.Manager.GetStore()); err != nil {
			contract.LogFatal("Cannot ingest source", err)
		}
	},
}

// sourceStatusCmd shows the ingested sources.
var sourceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display ingested sources and connection details",
	Long: `Show the ingested sources with their row counts, fields, origin and
ingestion time.

Examples:
  ensoview source status --source-backend sqlite`,
	PreRunE: sourceStoreSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSourceStatus(rootCtx, cfg, sourcedb.Manager.GetStore()); err != nil {
			contract.LogFatal("Failed to get source status", err)
		}
	},
}

// sourceClearCmd removes every ingested source.
var sourceClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all ingested sources",
	Long: `Delete every ingested source from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the source tables

Examples:
  ensoview source clear --source-backend sqlite`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		_, _, err := sourceBackendSetup(cmd)
		return err
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbPath := contract.GetDBFilePath()
		if cfg.SourceBackend == schema.SQLiteBackend && cfg.SourceDBConnect != "" {
			dbPath = cfg.SourceDBConnect
		}
		if err := sourcedb.ClearSources(cfg.SourceBackend, dbPath, cfg.SourceDBConnect); err != nil {
			contract.LogFatal("Failed to clear sources", err)
		}
		fmt.Println("Sources cleared successfully.")
	},
}

// sourceMigrateCmd runs schema migrations.
var sourceMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run source schema migrations",
	Long: `Apply or roll back the schema migrations of the source tables.

Examples:
  # Migrate to the latest version
  ensoview source migrate --source-backend postgresql

  # Roll back everything
  ensoview source migrate --source-backend sqlite --target-version 0`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		_, _, err := sourceBackendSetup(cmd)
		return err
	},
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := sourcedb.Migrate(os.Stdout, cfg.SourceBackend, cfg.SourceDBConnect, target); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
