// Package api implements deployments.Repository against the deployment
// API's HTTP endpoints.
//
// Listing follows cursor pagination (page_token / next_page_token) and
// returns the fully materialized deployment list; deletion issues a single
// DELETE per deployment. The client never retries: transient failures are
// reported to the caller, which records them per deployment instead of
// aborting the run.
//
// The access token travels as an Authorization bearer header and never
// appears in logs or error messages.
package api
