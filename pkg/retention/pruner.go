package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mercator-hq/saturn/pkg/cli"
	"mercator-hq/saturn/pkg/deployments"
)

// RunStatus describes how a retention run concluded.
type RunStatus string

const (
	// StatusNoDeployments means the environment had no deployments at all.
	StatusNoDeployments RunStatus = "no_deployments"
	// StatusNothingToDelete means every deployment fit the retention window.
	StatusNothingToDelete RunStatus = "nothing_to_delete"
	// StatusDryRun means deletions were computed but not executed.
	StatusDryRun RunStatus = "dry_run"
	// StatusAborted means confirmation was declined before any deletion.
	StatusAborted RunStatus = "aborted"
	// StatusCompleted means the deletion batch ran to completion, with or
	// without individual failures.
	StatusCompleted RunStatus = "completed"
)

// Result captures everything a single retention run decided and did.
type Result struct {
	RunID       string        `json:"run_id"`
	Environment string        `json:"environment"`
	Status      RunStatus     `json:"status"`
	DryRun      bool          `json:"dry_run,omitempty"`
	Policy      Policy        `json:"policy"`
	Selection   Selection     `json:"selection"`
	Outcomes    []Outcome     `json:"outcomes,omitempty"`
	Summary     Summary       `json:"summary"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

// PrunerConfig contains configuration for the retention pruner.
type PrunerConfig struct {
	// Environment is the environment whose deployments are pruned.
	Environment string

	// Policy selects which deployments to keep.
	Policy Policy

	// DryRun reports what would be deleted without deleting anything.
	DryRun bool

	// Concurrency is the number of deletions in flight at once.
	// Default: 1 (sequential).
	Concurrency int

	// Progress receives per-deletion updates. Optional.
	Progress cli.ProgressReporter

	// Confirm, when set, is consulted after selection and before the first
	// deletion. Returning false ends the run with StatusAborted. It is not
	// consulted on dry runs or when there is nothing to delete.
	Confirm func(selection *Selection) bool
}

// Pruner enforces the retention policy for one environment. A Pruner makes
// a single pass per Run call; it owns no background tasks and keeps no
// state between runs.
type Pruner struct {
	repo    deployments.Repository
	config  *PrunerConfig
	deleter *Deleter
	logger  *slog.Logger
}

// NewPruner creates a new retention pruner.
func NewPruner(repo deployments.Repository, config *PrunerConfig) *Pruner {
	return &Pruner{
		repo:   repo,
		config: config,
		deleter: NewDeleter(repo, &DeleterConfig{
			Concurrency: config.Concurrency,
			Progress:    config.Progress,
		}),
		logger: slog.Default().With("component", "retention"),
	}
}

// Run executes one retention pass: list, select, delete, summarize.
//
// The error return is non-nil only when the environment's deployments
// cannot be listed; nothing has been deleted in that case. Individual
// deletion failures are folded into the Result and never surface as an
// error.
func (p *Pruner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:       uuid.New().String(),
		Environment: p.config.Environment,
		Status:      StatusCompleted,
		DryRun:      p.config.DryRun,
		Policy:      p.config.Policy,
		StartedAt:   time.Now(),
	}
	defer func() {
		result.Duration = time.Since(result.StartedAt)
	}()

	p.logger.Info("retention run started",
		"run_id", result.RunID,
		"environment", p.config.Environment,
		"keep_count", p.config.Policy.KeepCount,
		"dry_run", p.config.DryRun,
	)

	deps, err := p.repo.List(ctx, p.config.Environment)
	if err != nil {
		p.logger.Error("deployment listing failed",
			"run_id", result.RunID,
			"environment", p.config.Environment,
			"error", err,
		)
		return nil, err
	}

	if len(deps) == 0 {
		result.Status = StatusNoDeployments
		p.logger.Info("environment has no deployments",
			"run_id", result.RunID,
			"environment", p.config.Environment,
		)
		return result, nil
	}

	result.Selection = Select(deps, p.config.Policy)
	result.Summary = Summary{Kept: len(result.Selection.Kept)}

	if excluded := result.Selection.Excluded; excluded != nil {
		p.logger.Info("deployment excluded from retention",
			"run_id", result.RunID,
			"deployment_id", excluded.ID,
			"created_at", excluded.CreatedAt,
		)
	}

	if len(result.Selection.ToDelete) == 0 {
		result.Status = StatusNothingToDelete
		p.logger.Info("nothing to delete",
			"run_id", result.RunID,
			"deployment_count", len(deps),
			"kept_count", result.Summary.Kept,
		)
		return result, nil
	}

	if p.config.DryRun {
		result.Status = StatusDryRun
		p.logger.Info("dry run, skipping deletion",
			"run_id", result.RunID,
			"would_delete", len(result.Selection.ToDelete),
			"kept_count", result.Summary.Kept,
		)
		return result, nil
	}

	if p.config.Confirm != nil && !p.config.Confirm(&result.Selection) {
		result.Status = StatusAborted
		p.logger.Info("run aborted before deletion",
			"run_id", result.RunID,
			"would_delete", len(result.Selection.ToDelete),
		)
		return result, nil
	}

	result.Outcomes = p.deleter.Execute(ctx, result.Selection.ToDelete)
	result.Summary = Summarize(result.Outcomes, len(result.Selection.Kept))

	p.logger.Info("retention run completed",
		"run_id", result.RunID,
		"environment", p.config.Environment,
		"deleted_count", result.Summary.Deleted,
		"error_count", result.Summary.Errors,
		"kept_count", result.Summary.Kept,
	)

	return result, nil
}
