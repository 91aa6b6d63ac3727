// Package preflight provides readiness checks for the folders and external
// tools an assembly run depends on.
//
// The CLI "autoreel status" command renders every check. Runs and the watcher
// call RunAll before touching the filesystem so a missing ffmpeg or an
// unwritable output folder surfaces as a configuration error up front.
package preflight
