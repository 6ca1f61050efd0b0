// Package deployments defines the deployment domain model shared by the
// retention engine and the API client.
//
// # Types
//
// A Deployment is identified by a numeric ID, unique within an environment,
// and carries the creation timestamp that retention ordering is based on.
// Everything else on the struct is display metadata.
//
// # Repository
//
// Repository abstracts the deployment API. The production implementation
// lives in the api subpackage; tests substitute in-memory fakes. List must
// return the complete deployment set for an environment (pagination is the
// implementation's concern), and Delete makes exactly one removal attempt
// per call.
//
// # Errors
//
// The two failure modes have distinct types with distinct consequences:
//
//   - ListingError: the environment's deployments could not be enumerated.
//     Fatal to a retention run.
//   - DeletionError: a single deployment could not be removed. Recorded
//     per deployment, never fatal to the batch.
//
// Both support errors.As and unwrap to their underlying cause.
package deployments
