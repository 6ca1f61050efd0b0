package audit

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the audit trail schema.
const Schema = `
-- Retention run records
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,

    -- Run target
    environment TEXT NOT NULL,

    -- Timestamps
    started_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP NOT NULL,

    -- Policy inputs
    keep_count INTEGER NOT NULL,
    exclude_id INTEGER,
    exclude_most_recent BOOLEAN NOT NULL,
    dry_run BOOLEAN NOT NULL,

    -- Result
    status TEXT NOT NULL,
    kept_count INTEGER NOT NULL,
    deleted_count INTEGER NOT NULL,
    error_count INTEGER NOT NULL,

    -- Per-deployment outcomes (JSON)
    outcomes TEXT
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_runs_environment ON runs(environment);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
