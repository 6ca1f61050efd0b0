package deployments

import "fmt"

// ListingError represents a failure to list an environment's deployments.
// Listing failures are fatal to a retention run: without the complete set
// of deployments no safe deletion decision can be made.
type ListingError struct {
	Environment string // Environment whose listing failed
	Cause       error  // Underlying error
}

// Error implements the error interface.
func (e *ListingError) Error() string {
	return fmt.Sprintf("listing error [environment=%s]: %v", e.Environment, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ListingError) Unwrap() error {
	return e.Cause
}

// NewListingError creates a new ListingError.
func NewListingError(environment string, cause error) *ListingError {
	return &ListingError{
		Environment: environment,
		Cause:       cause,
	}
}

// DeletionError represents a failure to delete a single deployment.
// Deletion failures are not fatal: the batch deleter records them as
// outcomes and continues with the remaining deployments.
type DeletionError struct {
	ID    int64 // Deployment that failed to delete
	Cause error // Underlying error
}

// Error implements the error interface.
func (e *DeletionError) Error() string {
	return fmt.Sprintf("deletion error [deployment_id=%d]: %v", e.ID, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *DeletionError) Unwrap() error {
	return e.Cause
}

// NewDeletionError creates a new DeletionError.
func NewDeletionError(id int64, cause error) *DeletionError {
	return &DeletionError{
		ID:    id,
		Cause: cause,
	}
}
