package deployments

import (
	"context"
	"time"
)

// Deployment represents a single deployment within an environment as
// reported by the deployment API.
type Deployment struct {
	// Identity
	ID int64 `json:"id"` // Unique within an environment

	// Timestamps
	CreatedAt time.Time `json:"created_at"` // Creation time; drives retention ordering

	// Display metadata from the API. Not used for retention decisions.
	Commit string `json:"commit,omitempty"` // Source revision the deployment was built from
	Status string `json:"status,omitempty"` // Deployment state ("active", "inactive", ...)
}

// Repository defines the interface to the deployment API.
// Implementations must be safe for concurrent use: the batch deleter may
// issue Delete calls from multiple goroutines.
type Repository interface {
	// List returns all deployments of an environment, newest and oldest
	// alike. Implementations are responsible for exhausting any
	// server-side pagination; callers always receive the complete set.
	// Returns an empty slice if the environment has no deployments.
	List(ctx context.Context, environment string) ([]Deployment, error)

	// Delete removes a single deployment by ID. Exactly one attempt is
	// made per call; retry policy is the caller's decision.
	Delete(ctx context.Context, id int64) error
}
