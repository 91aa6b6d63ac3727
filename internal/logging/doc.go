// Package logging assembles structured slog loggers and formatting helpers used
// across autoreel.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with run IDs, stages, and triggers. The persistent log file always
// receives JSON so runs can be grepped after the fact, while the terminal gets
// the configured format.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
