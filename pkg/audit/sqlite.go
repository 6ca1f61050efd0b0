package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConfig contains configuration for the SQLite audit backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// DisableWAL turns off Write-Ahead Logging mode. WAL is enabled by
	// default for better concurrency.
	DisableWAL bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/saturn-audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite audit backend.
// It initializes the database schema and enables WAL mode unless disabled.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "audit.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("audit storage initialized",
		"path", config.Path,
		"wal_mode", !config.DisableWAL,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if !s.config.DisableWAL {
		_, err := s.db.Exec("PRAGMA journal_mode=WAL;")
		if err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs))
	if err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	_, err = s.db.Exec(Schema)
	if err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	s.logger.Debug("database schema created")

	_, err = s.db.Exec(InsertSchemaVersion, SchemaVersion)
	if err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err = s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)

	return nil
}

// Record persists a run record to the database.
func (s *SQLiteStorage) Record(ctx context.Context, record *RunRecord) error {
	outcomes, _ := json.Marshal(record.Outcomes)

	query := `
		INSERT INTO runs (
			id, environment,
			started_at, completed_at,
			keep_count, exclude_id, exclude_most_recent, dry_run,
			status, kept_count, deleted_count, error_count,
			outcomes
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	var excludeIDVal interface{}
	if record.ExcludeID != nil {
		excludeIDVal = *record.ExcludeID
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.Environment,
		record.StartedAt, record.CompletedAt,
		record.KeepCount, excludeIDVal, record.ExcludeMostRecent, record.DryRun,
		record.Status, record.KeptCount, record.DeletedCount, record.ErrorCount,
		string(outcomes),
	)

	if err != nil {
		return NewStorageError("sqlite", "record", err)
	}

	return nil
}

// Query retrieves run records matching the query filters, newest run first.
func (s *SQLiteStorage) Query(ctx context.Context, query *Query) ([]*RunRecord, error) {
	whereClause, args := s.buildWhereClause(query)

	sqlQuery := "SELECT * FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY started_at DESC"

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)

	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*RunRecord{}
	for rows.Next() {
		record, err := s.scanRow(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of run records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *Query) (int64, error) {
	whereClause, args := s.buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count)
	if err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}

	s.logger.Info("audit storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the WHERE clause (without "WHERE" keyword) and the query arguments.
func (s *SQLiteStorage) buildWhereClause(query *Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.Environment != "" {
		conditions = append(conditions, "environment = ?")
		args = append(args, query.Environment)
	}
	if query.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, query.Status)
	}
	if query.Since != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, *query.Since)
	}

	whereClause := ""
	for i, condition := range conditions {
		if i > 0 {
			whereClause += " AND "
		}
		whereClause += condition
	}

	return whereClause, args
}

// scanRow scans a database row into a RunRecord.
func (s *SQLiteStorage) scanRow(rows *sql.Rows) (*RunRecord, error) {
	var record RunRecord
	var outcomes string
	var excludeID sql.NullInt64

	err := rows.Scan(
		&record.ID, &record.Environment,
		&record.StartedAt, &record.CompletedAt,
		&record.KeepCount, &excludeID, &record.ExcludeMostRecent, &record.DryRun,
		&record.Status, &record.KeptCount, &record.DeletedCount, &record.ErrorCount,
		&outcomes,
	)
	if err != nil {
		return nil, err
	}

	if excludeID.Valid {
		id := excludeID.Int64
		record.ExcludeID = &id
	}

	if outcomes != "" {
		json.Unmarshal([]byte(outcomes), &record.Outcomes)
	}

	return &record, nil
}
