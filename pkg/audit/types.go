package audit

import (
	"context"
	"time"

	"mercator-hq/saturn/pkg/retention"
)

// RunRecord represents the persisted audit trail of a single retention run.
// It captures the policy inputs, the outcome counts, and the per-deployment
// deletion outcomes so that a run can be reconstructed after the fact.
type RunRecord struct {
	// Identity
	ID          string `json:"id"`          // Run ID, matches the run report
	Environment string `json:"environment"` // Environment the run targeted

	// Timestamps
	StartedAt   time.Time `json:"started_at"`   // When the run began
	CompletedAt time.Time `json:"completed_at"` // When the run finished

	// Policy inputs
	KeepCount         int    `json:"keep_count"`           // Retention window size
	ExcludeID         *int64 `json:"exclude_id,omitempty"` // Pinned deployment, if any
	ExcludeMostRecent bool   `json:"exclude_most_recent"`  // Newest-deployment pin
	DryRun            bool   `json:"dry_run"`              // True when nothing was deleted

	// Result
	Status       string `json:"status"`        // Terminal run status
	KeptCount    int    `json:"kept_count"`    // Deployments retained
	DeletedCount int    `json:"deleted_count"` // Deployments removed
	ErrorCount   int    `json:"error_count"`   // Deletion attempts that failed

	// Per-deployment outcomes
	Outcomes []retention.Outcome `json:"outcomes,omitempty"`
}

// NewRunRecord converts a retention run result into its audit record.
func NewRunRecord(result *retention.Result) *RunRecord {
	return &RunRecord{
		ID:                result.RunID,
		Environment:       result.Environment,
		StartedAt:         result.StartedAt,
		CompletedAt:       result.StartedAt.Add(result.Duration),
		KeepCount:         result.Policy.KeepCount,
		ExcludeID:         result.Policy.ExcludeID,
		ExcludeMostRecent: result.Policy.ExcludeMostRecent,
		DryRun:            result.DryRun,
		Status:            string(result.Status),
		KeptCount:         result.Summary.Kept,
		DeletedCount:      result.Summary.Deleted,
		ErrorCount:        result.Summary.Errors,
		Outcomes:          result.Outcomes,
	}
}

// Query defines filter parameters for querying run records.
type Query struct {
	// Filters
	Environment string     `json:"environment,omitempty"` // Filter by environment
	Status      string     `json:"status,omitempty"`      // Filter by run status
	Since       *time.Time `json:"since,omitempty"`       // Runs started at or after

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Max records to return
	Offset int `json:"offset,omitempty"` // Skip N records
}

// Storage defines the interface for audit trail backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Record persists a run record.
	// Returns an error if the record cannot be written.
	Record(ctx context.Context, record *RunRecord) error

	// Query retrieves run records matching the query filters, newest run
	// first. Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*RunRecord, error)

	// Count returns the number of run records matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the storage backend.
	Close() error
}
