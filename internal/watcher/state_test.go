package watcher

import (
	"testing"

	"autoreel/internal/catalog"
)

func snap(paths ...string) catalog.Snapshot {
	s := catalog.Snapshot{}
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

func TestDecide(t *testing.T) {
	base := snap("/in/a.jpg", "/in/b.mp4")
	cases := []struct {
		name     string
		state    State
		snapshot catalog.Snapshot
		want     Action
		rebased  bool
	}{
		{"no manual run yet", State{Armed: true}, snap("/in/a.jpg"), Idle, false},
		{"unchanged", State{Armed: true, HasRun: true, Baseline: base}, snap("/in/b.mp4", "/in/a.jpg"), Idle, false},
		{"empty folder", State{Armed: true, HasRun: true, Baseline: base}, snap(), Idle, false},
		{"file added", State{Armed: true, HasRun: true, Baseline: base}, snap("/in/a.jpg", "/in/b.mp4", "/in/c.png"), Trigger, true},
		{"file replaced", State{Armed: true, HasRun: true, Baseline: base}, snap("/in/a.jpg", "/in/c.mp4"), Trigger, true},
		{"disarmed change", State{HasRun: true, Baseline: base}, snap("/in/a.jpg"), Notice, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, action := Decide(tc.state, tc.snapshot)
			if action != tc.want {
				t.Fatalf("action = %s, want %s", action, tc.want)
			}
			if got := next.Baseline.Equal(tc.snapshot); got != tc.rebased {
				t.Fatalf("baseline rebased = %v, want %v", got, tc.rebased)
			}
			if next.Armed != tc.state.Armed || next.HasRun != tc.state.HasRun {
				t.Fatalf("flags changed: %+v -> %+v", tc.state, next)
			}
		})
	}
}

func TestDecideTriggersOncePerDistinctChange(t *testing.T) {
	state := AcceptManualRun(State{Armed: true}, snap("/in/a.jpg"))
	sequence := []catalog.Snapshot{
		snap("/in/a.jpg"),
		snap("/in/a.jpg", "/in/b.mp4"),
		snap("/in/a.jpg", "/in/b.mp4"),
		snap("/in/a.jpg", "/in/b.mp4"),
		snap("/in/b.mp4"),
		snap("/in/b.mp4"),
	}
	triggers := 0
	for _, s := range sequence {
		var action Action
		state, action = Decide(state, s)
		if action == Trigger {
			triggers++
		}
	}
	if triggers != 2 {
		t.Fatalf("expected 2 triggers, got %d", triggers)
	}
}

func TestAcceptManualRunCopiesSnapshot(t *testing.T) {
	s := snap("/in/a.jpg")
	state := AcceptManualRun(State{}, s)
	s["/in/b.mp4"] = struct{}{}
	if !state.HasRun || len(state.Baseline) != 1 {
		t.Fatalf("unexpected state %+v", state)
	}
}
