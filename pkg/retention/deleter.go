package retention

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"mercator-hq/saturn/pkg/cli"
	"mercator-hq/saturn/pkg/deployments"
)

// Outcome records the result of a single deletion attempt. Exactly one
// Outcome exists per deployment handed to the deleter.
type Outcome struct {
	ID      int64  `json:"id"`              // Deployment the attempt targeted
	Deleted bool   `json:"deleted"`         // True if the deployment was removed
	Error   string `json:"error,omitempty"` // Failure message when Deleted is false
}

// Summary aggregates a retention run for reporting.
type Summary struct {
	Deleted int `json:"deleted"` // Deployments successfully removed
	Errors  int `json:"errors"`  // Deletion attempts that failed
	Kept    int `json:"kept"`    // Deployments retained by the policy
}

// DeleterConfig contains configuration for the batch deleter.
type DeleterConfig struct {
	// Concurrency is the number of deletions in flight at once.
	// 1 deletes sequentially in toDelete order.
	Concurrency int

	// Progress receives per-attempt updates. Optional.
	Progress cli.ProgressReporter
}

// DefaultDeleterConfig returns the default deleter configuration.
func DefaultDeleterConfig() *DeleterConfig {
	return &DeleterConfig{
		Concurrency: 1,
	}
}

// Deleter removes deployments through a Repository, tolerating per-item
// failure. One deployment's failure never aborts the batch and never
// alters the outcome of any other attempt.
type Deleter struct {
	repo        deployments.Repository
	concurrency int
	progress    cli.ProgressReporter
	logger      *slog.Logger
}

// NewDeleter creates a new batch deleter.
func NewDeleter(repo deployments.Repository, config *DeleterConfig) *Deleter {
	if config == nil {
		config = DefaultDeleterConfig()
	}

	concurrency := config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Deleter{
		repo:        repo,
		concurrency: concurrency,
		progress:    config.Progress,
		logger:      slog.Default().With("component", "retention.deleter"),
	}
}

// Execute attempts to delete every deployment in toDelete, exactly one
// attempt per item, and returns one Outcome per item. Failures come back
// as Outcome values, never as an error: the caller folds them into the
// run summary.
//
// A cancelled context stops issuing new deletions; deployments not yet
// attempted are recorded as failed outcomes carrying the context error,
// so the one-outcome-per-item contract holds across interrupts.
func (d *Deleter) Execute(ctx context.Context, toDelete []deployments.Deployment) []Outcome {
	if len(toDelete) == 0 {
		return nil
	}

	if d.progress != nil {
		d.progress.Start(int64(len(toDelete)))
	}

	var outcomes []Outcome
	if d.concurrency == 1 {
		outcomes = d.executeSequential(ctx, toDelete)
	} else {
		outcomes = d.executeParallel(ctx, toDelete)
	}

	if d.progress != nil {
		d.progress.Finish()
	}

	return outcomes
}

// executeSequential deletes one deployment at a time in toDelete order.
func (d *Deleter) executeSequential(ctx context.Context, toDelete []deployments.Deployment) []Outcome {
	outcomes := make([]Outcome, 0, len(toDelete))

	for i, dep := range toDelete {
		outcomes = append(outcomes, d.deleteOne(ctx, dep))
		if d.progress != nil {
			d.progress.Update(int64(i + 1))
		}
	}

	return outcomes
}

// executeParallel deletes with a bounded worker pool. Workers are fed in
// toDelete order; outcomes are accumulated append-only under a mutex, so
// the result is order-independent but complete.
func (d *Deleter) executeParallel(ctx context.Context, toDelete []deployments.Deployment) []Outcome {
	var (
		mu        sync.Mutex
		outcomes  = make([]Outcome, 0, len(toDelete))
		completed atomic.Int64
		wg        sync.WaitGroup
	)

	jobs := make(chan deployments.Deployment)

	workers := d.concurrency
	if workers > len(toDelete) {
		workers = len(toDelete)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for dep := range jobs {
				outcome := d.deleteOne(ctx, dep)

				mu.Lock()
				outcomes = append(outcomes, outcome)
				mu.Unlock()

				if d.progress != nil {
					d.progress.Update(completed.Add(1))
				}
			}
		}()
	}

	for _, dep := range toDelete {
		jobs <- dep
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// deleteOne performs a single deletion attempt and converts the result to
// an Outcome. Repository errors are captured as data, not propagated.
func (d *Deleter) deleteOne(ctx context.Context, dep deployments.Deployment) Outcome {
	if err := ctx.Err(); err != nil {
		d.logger.Warn("deletion not attempted",
			"deployment_id", dep.ID,
			"error", err,
		)
		return Outcome{ID: dep.ID, Error: err.Error()}
	}

	if err := d.repo.Delete(ctx, dep.ID); err != nil {
		d.logger.Warn("deployment deletion failed",
			"deployment_id", dep.ID,
			"created_at", dep.CreatedAt,
			"error", err,
		)
		return Outcome{ID: dep.ID, Error: err.Error()}
	}

	d.logger.Debug("deployment deleted",
		"deployment_id", dep.ID,
		"created_at", dep.CreatedAt,
	)
	return Outcome{ID: dep.ID, Deleted: true}
}

// Summarize folds per-item outcomes and the kept count into a Summary.
func Summarize(outcomes []Outcome, keptCount int) Summary {
	summary := Summary{Kept: keptCount}
	for _, outcome := range outcomes {
		if outcome.Deleted {
			summary.Deleted++
		} else {
			summary.Errors++
		}
	}
	return summary
}
