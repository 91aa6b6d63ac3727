// Package history persists a ledger of assembly runs in SQLite.
//
// Every run, whether triggered manually or by the watcher, is recorded with
// its outcome, output artifacts, and any source deletion failures so the CLI
// can answer "what happened last night" without trawling log files.
package history
