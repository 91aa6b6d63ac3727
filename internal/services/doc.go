// Package services defines shared utilities consumed by the assembly stages
// and the external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and trigger sources
//     for logging and tracing.
//   - Structured error markers plus the Wrap helper that turn stage failures
//     into one terminal error naming the stage that failed.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error classification, observability) stays uniform across the pipeline.
package services
