package watcher

import "autoreel/internal/catalog"

// Action is the outcome of one tick.
type Action int

const (
	// Idle means nothing to do: no manual run yet, an empty folder, or no change.
	Idle Action = iota
	// Notice means the folder changed while auto mode is disarmed.
	Notice
	// Trigger means the folder changed and the pipeline should run.
	Trigger
)

func (a Action) String() string {
	switch a {
	case Notice:
		return "notice"
	case Trigger:
		return "trigger"
	default:
		return "idle"
	}
}

// State is the watcher's memory between ticks.
type State struct {
	// Armed enables automatic re-runs.
	Armed bool
	// HasRun is set once a manual run has succeeded.
	HasRun bool
	// Baseline is the last accepted snapshot of input paths.
	Baseline catalog.Snapshot
}

// Decide compares snapshot against the baseline and returns the next state.
// A changed, non-empty snapshot becomes the new baseline whether or not the
// watcher is armed, so each distinct change is reported once.
func Decide(state State, snapshot catalog.Snapshot) (State, Action) {
	if !state.HasRun || len(snapshot) == 0 || snapshot.Equal(state.Baseline) {
		return state, Idle
	}
	next := state
	next.Baseline = snapshot.Clone()
	if !state.Armed {
		return next, Notice
	}
	return next, Trigger
}

// AcceptManualRun records a successful manual run over snapshot.
func AcceptManualRun(state State, snapshot catalog.Snapshot) State {
	next := state
	next.HasRun = true
	next.Baseline = snapshot.Clone()
	return next
}
