// Package assembly runs the end-to-end media assembly pipeline.
//
// A run lists the input folder, normalizes every item into a private scratch
// workspace, builds a playlist under the requested length policy, and hands it
// to the concat engine. Source deletion happens only after the combined video
// exists. Every attempt, including rejected ones, is written to the history
// ledger and the metrics recorder when those are configured.
//
// Configuration problems (non-positive image duration or target, empty
// catalog) are reported before any external process starts or any scratch
// directory is created.
package assembly
