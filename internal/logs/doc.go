// Package logs reads the persistent JSON log file for `autoreel logs`.
//
// Last returns the trailing lines with bounded memory, ReadFrom resumes at a
// byte offset, and Follow polls for appended lines until its context ends.
// Entries decode the JSON records written by internal/logging so callers can
// filter by run id or level.
package logs
