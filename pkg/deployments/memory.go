package deployments

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// MemoryRepository implements the Repository interface with an in-memory
// deployment set. This implementation is intended for testing and local
// development and should not be used in production. Listing and per-ID
// deletion failures can be scripted, and every call is recorded for
// assertions.
type MemoryRepository struct {
	environments map[string][]Deployment
	listErr      error
	deleteErrs   map[int64]error
	deleteCalls  []int64
	listCalls    int
	mu           sync.Mutex
}

// NewMemoryRepository creates a new in-memory deployment repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		environments: make(map[string][]Deployment),
		deleteErrs:   make(map[int64]error),
	}
}

// Seed adds deployments to an environment.
func (r *MemoryRepository) Seed(environment string, deps ...Deployment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.environments[environment] = append(r.environments[environment], deps...)
}

// FailListing makes subsequent List calls fail with cause.
func (r *MemoryRepository) FailListing(cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listErr = cause
}

// FailDeletion makes deletion of the given ID fail with cause.
// The deployment stays in the repository.
func (r *MemoryRepository) FailDeletion(id int64, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteErrs[id] = cause
}

// List returns a copy of the environment's deployments.
func (r *MemoryRepository) List(ctx context.Context, environment string) ([]Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++

	if r.listErr != nil {
		return nil, NewListingError(environment, r.listErr)
	}

	return slices.Clone(r.environments[environment]), nil
}

// Delete removes a deployment by ID from whichever environment holds it.
func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteCalls = append(r.deleteCalls, id)

	if cause, ok := r.deleteErrs[id]; ok {
		return NewDeletionError(id, cause)
	}

	for env, deps := range r.environments {
		for i, d := range deps {
			if d.ID == id {
				r.environments[env] = slices.Delete(deps, i, i+1)
				return nil
			}
		}
	}

	return NewDeletionError(id, errors.New("deployment not found"))
}

// DeleteCalls returns the IDs passed to Delete, in call order (for testing).
func (r *MemoryRepository) DeleteCalls() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.deleteCalls)
}

// ListCalls returns the number of List invocations (for testing).
func (r *MemoryRepository) ListCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.listCalls
}

// Size returns the number of deployments in an environment (for testing).
func (r *MemoryRepository) Size(environment string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.environments[environment])
}
