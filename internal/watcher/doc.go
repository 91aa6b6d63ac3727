// Package watcher re-runs the assembly pipeline when the input folder changes.
//
// The decision logic lives in Decide, a pure function over an explicit State
// and a fresh catalog snapshot. Watcher drives it from a ticker; filesystem
// events only wake the loop early and never replace the snapshot comparison.
// A single goroutine owns the state, so ticks and runs never overlap and a
// long assembly delays the next tick.
package watcher
