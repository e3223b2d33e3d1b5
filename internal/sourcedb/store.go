package sourcedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names shared by the store and the migrations.
const (
	catalogTable = "source_catalog"
	cellsTable   = "source_cells"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SourceStoreImpl keeps one raw table per index in a catalog table and a cells table.
type SourceStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.SourceStore = &SourceStoreImpl{} // Compile-time check

// NewSourceStore opens the backend, verifies the connection and creates the tables.
func NewSourceStore(backend schema.DatabaseBackend, connStr string) (*SourceStoreImpl, error) {
	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	for _, query := range createTableQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create source tables: %w", err)
		}
	}

	return &SourceStoreImpl{db: db, backend: backend}, nil
}

// driverFor maps a backend to its database/sql driver name and DSN.
func driverFor(backend schema.DatabaseBackend, connStr string) (string, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = contract.GetDBFilePath()
		}
		return "sqlite", connStr, nil
	case schema.MySQLBackend:
		// user:password@tcp(host:port)/dbname
		return "mysql", connStr, nil
	case schema.PostgreSQLBackend:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		return "pgx", connStr, nil
	default:
		return "", "", fmt.Errorf("unsupported source backend: %s. Must be sqlite, mysql, or postgresql", backend)
	}
}

// createTableQueries returns the DDL for the catalog and cells tables.
// The column types are valid on all three backends.
func createTableQueries(backend schema.DatabaseBackend) []string {
	return []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				index_kind VARCHAR(32) PRIMARY KEY,
				origin TEXT NOT NULL,
				fields TEXT NOT NULL,
				row_count INTEGER NOT NULL,
				loaded_at BIGINT NOT NULL
			)`, quoteTableName(catalogTable, backend)),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				index_kind VARCHAR(32) NOT NULL,
				row_num INTEGER NOT NULL,
				col_num INTEGER NOT NULL,
				field_name VARCHAR(255) NOT NULL,
				cell_value TEXT NOT NULL,
				PRIMARY KEY (index_kind, row_num, col_num)
			)`, quoteTableName(cellsTable, backend)),
	}
}

// quoteTableName quotes an identifier for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// validateTableName rejects identifiers that cannot be safely interpolated.
func validateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// bind rewrites ? placeholders into $n for PostgreSQL.
func (ps *SourceStoreImpl) bind(query string) string {
	if ps.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (ps *SourceStoreImpl) table(name string) string {
	return quoteTableName(name, ps.backend)
}

// Load rebuilds the raw table of spec.Kind from the cells table.
func (ps *SourceStoreImpl) Load(ctx context.Context, spec schema.IndexSourceSpec) (schema.RawTable, error) {
	var origin, fieldsJSON string
	var rowCount int
	query := ps.bind(fmt.Sprintf(`SELECT origin, fields, row_count FROM %s WHERE index_kind = ?`, ps.table(catalogTable)))
	err := ps.db.QueryRowContext(ctx, query, string(spec.Kind)).Scan(&origin, &fieldsJSON, &rowCount)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.RawTable{}, &schema.SourceMissingError{
			Index:    spec.Kind,
			Searched: []string{fmt.Sprintf("%s table %s", ps.backend, catalogTable)},
			Guidance: fmt.Sprintf("run 'ensoview source ingest --index %s --from FILE' first", spec.Kind),
		}
	}
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("failed to read catalog for %s: %w", spec.Kind, err)
	}

	var fields []string
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return schema.RawTable{}, fmt.Errorf("corrupt field list for %s: %w", spec.Kind, err)
	}

	table := schema.RawTable{
		Fields:  fields,
		Records: make([]schema.RawRecord, rowCount),
		Origin:  fmt.Sprintf("%s:%s", ps.backend, origin),
	}
	for i := range table.Records {
		table.Records[i] = make(schema.RawRecord, len(fields))
	}

	query = ps.bind(fmt.Sprintf(`SELECT row_num, field_name, cell_value FROM %s WHERE index_kind = ? ORDER BY row_num, col_num`, ps.table(cellsTable)))
	rows, err := ps.db.QueryContext(ctx, query, string(spec.Kind))
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("failed to read cells for %s: %w", spec.Kind, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var rowNum int
		var field, cell string
		if err := rows.Scan(&rowNum, &field, &cell); err != nil {
			return schema.RawTable{}, fmt.Errorf("failed to scan cell for %s: %w", spec.Kind, err)
		}
		if rowNum < 0 || rowNum >= rowCount {
			continue
		}
		table.Records[rowNum][field] = cell
	}
	if err := rows.Err(); err != nil {
		return schema.RawTable{}, fmt.Errorf("failed to iterate cells for %s: %w", spec.Kind, err)
	}
	return table, nil
}

// Ingest replaces the stored table of kind inside one transaction.
func (ps *SourceStoreImpl) Ingest(ctx context.Context, kind schema.IndexKind, table schema.RawTable) (int, error) {
	fieldsJSON, err := json.Marshal(table.Fields)
	if err != nil {
		return 0, fmt.Errorf("failed to encode field list: %w", err)
	}
	colOf := make(map[string]int, len(table.Fields))
	for i, f := range table.Fields {
		if _, seen := colOf[f]; !seen {
			colOf[f] = i
		}
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range []string{cellsTable, catalogTable} {
		query := ps.bind(fmt.Sprintf(`DELETE FROM %s WHERE index_kind = ?`, ps.table(name)))
		if _, err := tx.ExecContext(ctx, query, string(kind)); err != nil {
			return 0, fmt.Errorf("failed to clear previous %s rows: %w", kind, err)
		}
	}

	insertCell := ps.bind(fmt.Sprintf(`INSERT INTO %s (index_kind, row_num, col_num, field_name, cell_value) VALUES (?, ?, ?, ?, ?)`, ps.table(cellsTable)))
	stmt, err := tx.PrepareContext(ctx, insertCell)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare cell insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for rowNum, record := range table.Records {
		for field, cell := range record {
			col, ok := colOf[field]
			if !ok {
				continue
			}
			if _, err := stmt.ExecContext(ctx, string(kind), rowNum, col, field, cell); err != nil {
				return 0, fmt.Errorf("failed to insert row %d of %s: %w", rowNum, kind, err)
			}
		}
	}

	insertCatalog := ps.bind(fmt.Sprintf(`INSERT INTO %s (index_kind, origin, fields, row_count, loaded_at) VALUES (?, ?, ?, ?, ?)`, ps.table(catalogTable)))
	if _, err := tx.ExecContext(ctx, insertCatalog, string(kind), table.Origin, string(fieldsJSON), len(table.Records), time.Now().Unix()); err != nil {
		return 0, fmt.Errorf("failed to record catalog entry for %s: %w", kind, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit ingest of %s: %w", kind, err)
	}
	return len(table.Records), nil
}

// GetStatus lists the ingested sources.
func (ps *SourceStoreImpl) GetStatus(ctx context.Context) (schema.SourceStatus, error) {
	status := schema.SourceStatus{
		Backend:   ps.backend,
		Connected: ps.db != nil,
	}
	if ps.db == nil {
		return status, nil
	}

	query := fmt.Sprintf(`SELECT index_kind, origin, fields, row_count, loaded_at FROM %s ORDER BY index_kind`, ps.table(catalogTable))
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return status, fmt.Errorf("failed to list sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var entry schema.SourceEntry
		var kind, fieldsJSON string
		var loadedAt int64
		if err := rows.Scan(&kind, &entry.Origin, &fieldsJSON, &entry.Rows, &loadedAt); err != nil {
			return status, fmt.Errorf("failed to scan source entry: %w", err)
		}
		entry.Index = schema.IndexKind(kind)
		entry.LoadedAt = time.Unix(loadedAt, 0)
		if err := json.Unmarshal([]byte(fieldsJSON), &entry.Fields); err != nil {
			return status, fmt.Errorf("corrupt field list for %s: %w", kind, err)
		}
		status.Entries = append(status.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("failed to iterate sources: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, ps.table(cellsTable))
	if err := ps.db.QueryRowContext(ctx, countQuery).Scan(&status.CellCount); err != nil {
		return status, fmt.Errorf("failed to count cells: %w", err)
	}
	return status, nil
}

// Ping verifies the connection.
func (ps *SourceStoreImpl) Ping(ctx context.Context) error {
	if ps.db == nil {
		return fmt.Errorf("source store is closed")
	}
	return ps.db.PingContext(ctx)
}

// Close closes the underlying DB connection.
func (ps *SourceStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
