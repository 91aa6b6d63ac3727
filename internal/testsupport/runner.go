package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"autoreel/internal/procexec"
)

// Call records one invocation seen by FakeRunner.
type Call struct {
	Name string
	Args []string
}

// FakeRunner stands in for ffmpeg and ffprobe.
//
// ffprobe calls answer with Durations keyed by the probed file's base name and
// fail when the name is unknown. ffmpeg calls create their output file (the
// last argument) unless an argument contains FailOn.
type FakeRunner struct {
	mu        sync.Mutex
	Durations map[string]float64
	FailOn    string
	calls     []Call
}

// NewFakeRunner returns a runner seeded with base-name durations.
func NewFakeRunner(durations map[string]float64) *FakeRunner {
	if durations == nil {
		durations = map[string]float64{}
	}
	return &FakeRunner{Durations: durations}
}

// Run implements procexec.Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (procexec.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	durations := f.Durations
	failOn := f.FailOn
	f.mu.Unlock()

	if len(args) == 0 {
		return procexec.Result{}, nil
	}
	target := args[len(args)-1]
	tool := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	switch tool {
	case "ffprobe":
		seconds, ok := durations[filepath.Base(target)]
		if !ok {
			stderr := target + ": No such file or directory"
			return procexec.Result{ExitCode: 1, Stderr: []byte(stderr)}, &procexec.ExitError{Name: name, Code: 1, Stderr: stderr}
		}
		return procexec.Result{Stdout: []byte(strconv.FormatFloat(seconds, 'f', 6, 64) + "\n")}, nil
	default:
		if failOn != "" {
			for _, arg := range args {
				if strings.Contains(arg, failOn) {
					stderr := fmt.Sprintf("%s: Invalid data found when processing input", arg)
					return procexec.Result{ExitCode: 1, Stderr: []byte(stderr)}, &procexec.ExitError{Name: name, Code: 1, Stderr: stderr}
				}
			}
		}
		if err := os.WriteFile(target, []byte("fake media"), 0o644); err != nil {
			return procexec.Result{ExitCode: 1}, err
		}
		return procexec.Result{}, nil
	}
}

// Calls returns a copy of the recorded invocations.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded invocations of the named tool.
func (f *FakeRunner) CallsTo(tool string) []Call {
	var matched []Call
	for _, call := range f.Calls() {
		if strings.TrimSuffix(filepath.Base(call.Name), filepath.Ext(call.Name)) == tool {
			matched = append(matched, call)
		}
	}
	return matched
}
