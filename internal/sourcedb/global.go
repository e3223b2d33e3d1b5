package sourcedb

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/ensoview/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &SourceStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitSources opens the global store for a SQL backend.
// The file backend needs no store and leaves the manager empty.
func InitSources(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if !backend.IsSQL() {
			return
		}
		store, err := NewSourceStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize source store: %w", err)
			return
		}
		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})

	return initErr
}

// CloseSources should be called on application shutdown.
func CloseSources() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearSources removes every ingested source from the backend.
// For SQLite, it deletes the database file.
// For MySQL and PostgreSQL, it drops the source tables.
func ClearSources(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName, dsn, err := driverFor(backend, connStr)
		if err != nil {
			return err
		}
		for _, table := range []string{cellsTable, catalogTable} {
			if err := clearSQLTable(driverName, dsn, table); err != nil {
				return err
			}
		}
		return nil

	case schema.FileBackend:
		return fmt.Errorf("the file backend has no stored sources to clear")

	default:
		return fmt.Errorf("unsupported source backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
