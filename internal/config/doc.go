// Package config loads, normalizes, and validates autoreel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AUTOREEL_INPUT_DIR. The Config type centralizes every knob the CLI and the
// folder watcher need, so input/output folders, encoding profile, and external
// tool locations are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
