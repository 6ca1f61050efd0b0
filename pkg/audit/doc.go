// Package audit persists the history of retention runs.
//
// # Storage Backends
//
// The audit package defines the Storage interface and provides two
// implementations:
//
//   - SQLite: Embedded database for durable run history
//   - Memory: In-memory storage for testing
//
// # SQLite Backend
//
// The SQLite backend provides durable storage with:
//
//   - WAL mode for concurrent reads/writes
//   - Indexes on environment, start time and status
//   - Connection pooling for concurrent access
//   - Busy timeout for handling locks
//
// # Basic Usage
//
//	storage, err := audit.NewSQLiteStorage(&audit.SQLiteConfig{
//	    Path: "data/saturn-audit.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer storage.Close()
//
//	// Record a completed run
//	err = storage.Record(ctx, audit.NewRunRecord(result))
//
//	// List the last ten production runs
//	records, err := storage.Query(ctx, &audit.Query{
//	    Environment: "production",
//	    Limit:       10,
//	})
//
// # Failure Isolation
//
// Recording the audit trail is best-effort: a write failure must not fail
// the retention run that produced the record. Callers log storage errors
// as warnings and move on.
//
// # Schema Migration
//
// The SQLite backend initializes its schema on first use. The schema
// version is tracked in the schema_version table for future migrations.
package audit
