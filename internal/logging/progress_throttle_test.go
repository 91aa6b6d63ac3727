package logging

import "testing"

func TestNewProgressThrottleDefaultsStep(t *testing.T) {
	for _, step := range []int{0, -5, 101} {
		if got := NewProgressThrottle(step).step; got != 10 {
			t.Fatalf("step %d: got %d, want 10", step, got)
		}
	}
	if got := NewProgressThrottle(25).step; got != 25 {
		t.Fatalf("got %d, want 25", got)
	}
}

func TestProgressThrottleNilAllowsEverything(t *testing.T) {
	var throttle *ProgressThrottle
	if !throttle.Allow("Normalizing", 1, 10) {
		t.Fatal("nil throttle should allow")
	}
}

func TestProgressThrottleSteps(t *testing.T) {
	throttle := NewProgressThrottle(25)
	steps := []struct {
		done int
		want bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{3, true},
		{5, false},
		{6, true},
		{8, false},
		{9, true},
		{11, false},
		{12, true},
		{12, false},
	}
	for _, s := range steps {
		if got := throttle.Allow("Normalizing", s.done, 12); got != s.want {
			t.Fatalf("done=%d: got %v, want %v", s.done, got, s.want)
		}
	}
}

func TestProgressThrottleLabelChangeResets(t *testing.T) {
	throttle := NewProgressThrottle(50)
	throttle.Allow("Probing", 0, 4)
	throttle.Allow("Probing", 4, 4)

	if !throttle.Allow("  Normalizing ", 0, 4) {
		t.Fatal("label change should allow")
	}
	if throttle.label != "Normalizing" {
		t.Fatalf("label = %q, want trimmed", throttle.label)
	}
	if throttle.Allow("Normalizing", 1, 4) {
		t.Fatal("25% should not reach the 50% step")
	}
	if !throttle.Allow("Normalizing", 2, 4) {
		t.Fatal("50% should be allowed")
	}
}

func TestProgressThrottleUnknownTotal(t *testing.T) {
	throttle := NewProgressThrottle(10)
	if !throttle.Allow("Combining", 0, 0) {
		t.Fatal("first update should be allowed")
	}
	if throttle.Allow("Combining", 1, 0) {
		t.Fatal("unknown total should only log label changes")
	}
}
