// Package staging manages run-scoped scratch workspaces.
//
// Each assembly run owns one directory named run-<id> under the scratch root.
// The workspace is removed when the run ends, whatever the outcome.
// CleanStale sweeps workspaces left behind by processes that died mid-run.
package staging
