// Mercator Saturn enforces deployment retention for environments managed
// through a deployment API.
//
// It lists the deployments of an environment, keeps the most recent ones
// according to the configured policy, and deletes the rest:
//   - Keep-count retention with optional exclusions
//   - Dry-run reporting before any deletion
//   - Local SQLite audit trail of prune runs
//   - Prometheus Pushgateway metrics per run
//
// Usage:
//
//	# Prune with default configuration
//	saturn prune
//
//	# Keep the 5 most recent deployments of production
//	saturn prune --environment production --keep 5
//
//	# Report what would be deleted without deleting anything
//	saturn prune --dry-run
//
//	# Show recorded prune runs
//	saturn history --environment production
//
//	# Show version information
//	saturn version
//
// For complete documentation, see: https://github.com/mercator-hq/saturn
package main

func main() {
	Execute()
}
