package logging

import "strings"

// ProgressThrottle decides which progress updates are worth a log line when no
// progress bar is drawn. A line is allowed when the label changes, when the
// run crosses the next step of completion, and on the final item.
type ProgressThrottle struct {
	step  int
	label string
	next  int
}

// NewProgressThrottle returns a throttle that allows one line per step percent
// of progress. Steps outside 1..100 fall back to 10.
func NewProgressThrottle(step int) *ProgressThrottle {
	if step <= 0 || step > 100 {
		step = 10
	}
	return &ProgressThrottle{step: step}
}

// Allow reports whether done of total under label should be logged. A nil
// throttle allows everything. Totals of zero or less only log label changes.
func (t *ProgressThrottle) Allow(label string, done, total int) bool {
	if t == nil {
		return true
	}
	label = strings.TrimSpace(label)
	if label != t.label {
		t.label = label
		t.next = 0
		t.advance(done, total)
		return true
	}
	if total <= 0 {
		return false
	}
	if done >= total {
		if t.next > 100 {
			return false
		}
		t.next = 101
		return true
	}
	if percentOf(done, total) < t.next {
		return false
	}
	t.advance(done, total)
	return true
}

func (t *ProgressThrottle) advance(done, total int) {
	if total <= 0 {
		return
	}
	if done >= total {
		t.next = 101
		return
	}
	p := percentOf(done, total)
	t.next = (p/t.step + 1) * t.step
}

func percentOf(done, total int) int {
	if done <= 0 {
		return 0
	}
	return done * 100 / total
}
