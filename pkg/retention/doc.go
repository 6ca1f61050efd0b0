// Package retention decides which of an environment's deployments to keep
// and removes the rest, tolerating individual deletion failures.
//
// # Selection
//
// Select is a pure function from a deployment list and a Policy to a
// three-way partition:
//
//   - Excluded: at most one deployment pinned outside the retention
//     window, either by explicit ID or "the most recent"
//   - Kept: the KeepCount most recent deployments after exclusion
//   - ToDelete: everything older
//
// Deployments are ordered newest first by creation time; equal timestamps
// preserve the input's relative order, so selection is deterministic for
// any input. An exclusion never consumes a retention slot: excluding the
// newest deployment with KeepCount=10 still keeps the next ten.
//
//	selection := retention.Select(deps, retention.Policy{
//	    KeepCount:         10,
//	    ExcludeMostRecent: true,
//	})
//
// # Batch Deletion
//
// Deleter drives the ToDelete set through a deployments.Repository with
// exactly one attempt per item. Failures are recorded as Outcome values
// and never abort the batch:
//
//	deleter := retention.NewDeleter(repo, nil)
//	outcomes := deleter.Execute(ctx, selection.ToDelete)
//	summary := retention.Summarize(outcomes, len(selection.Kept))
//
// With Concurrency > 1 deletions run on a bounded worker pool; outcome
// accumulation is append-only and order-independent, and the result still
// carries exactly one outcome per deployment.
//
// # Run Orchestration
//
// Pruner sequences a complete run: list, select, delete, summarize.
//
//	pruner := retention.NewPruner(repo, &retention.PrunerConfig{
//	    Environment: "production",
//	    Policy:      retention.Policy{KeepCount: 10},
//	})
//	result, err := pruner.Run(ctx)
//
// Only the listing call can fail the run; at that point nothing has been
// deleted. An empty environment and an already-within-retention listing
// short-circuit with distinct no-op statuses (StatusNoDeployments,
// StatusNothingToDelete) before the deleter is invoked. Individual
// deletion failures surface in Result.Outcomes and the summary's error
// count, not as a run error.
//
// A Pruner holds no state between runs: every Run lists afresh and decides
// from that listing alone, so re-running after a partial failure deletes
// only what is still outside the retention window.
package retention
