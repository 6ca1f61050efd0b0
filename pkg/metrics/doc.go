// Package metrics exposes retention run metrics to Prometheus.
//
// # Metrics
//
// All metrics are gauges labeled by {environment, status} and describe the
// most recent run:
//
//   - saturn_prune_deployments_deleted: deployments removed
//   - saturn_prune_deployments_errors: deletion attempts that failed
//   - saturn_prune_deployments_kept: deployments retained
//   - saturn_prune_duration_seconds: run duration
//   - saturn_prune_last_run_timestamp_seconds: when the run happened
//
// # Pushgateway
//
// Saturn runs once and exits, so there is no process for Prometheus to
// scrape. The Pusher pushes the private registry to a Pushgateway after
// each run, grouped by job name and environment:
//
//	collector := metrics.NewCollector(cfg, nil)
//	collector.RecordRun("production", "completed", 5, 0, 10, duration)
//
//	pusher := metrics.NewPusher(cfg, collector)
//	if err := pusher.Push(ctx, "production"); err != nil {
//	    logger.Warn("metrics push failed", "error", err)
//	}
//
// A failed push is a warning, never a run failure.
package metrics
