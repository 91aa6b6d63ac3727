package procexec

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestExecRunnerCapturesStdout(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	result, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "printf 12.5")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(result.Stdout) != "12.5" {
		t.Fatalf("unexpected stdout %q", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Fatalf("unexpected exit code %d", result.ExitCode)
	}
}

func TestExecRunnerReportsExitError(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	result, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 3 || result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d/%d", exitErr.Code, result.ExitCode)
	}
	if exitErr.Stderr != "boom" {
		t.Fatalf("unexpected stderr %q", exitErr.Stderr)
	}
	if ExitCode(err) != 3 {
		t.Fatalf("ExitCode = %d, want 3", ExitCode(err))
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "autoreel-no-such-binary")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if ExitCode(err) != -1 {
		t.Fatalf("expected -1 exit code for start failure, got %d", ExitCode(err))
	}
}

func TestRunnerFuncDelegates(t *testing.T) {
	var gotName string
	var gotArgs []string
	runner := RunnerFunc(func(_ context.Context, name string, args ...string) (Result, error) {
		gotName = name
		gotArgs = args
		return Result{Stdout: []byte("ok")}, nil
	})
	result, err := runner.Run(context.Background(), "ffmpeg", "-y", "out.mp4")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gotName != "ffmpeg" || strings.Join(gotArgs, " ") != "-y out.mp4" {
		t.Fatalf("unexpected call %s %v", gotName, gotArgs)
	}
	if string(result.Stdout) != "ok" {
		t.Fatalf("unexpected stdout %q", result.Stdout)
	}
}

func TestTailKeepsLastLines(t *testing.T) {
	value := strings.Repeat("x", 10) + "\nlast line"
	got := tail(value, 12)
	if got != "…last line" {
		t.Fatalf("tail = %q", got)
	}
	if tail(" short ", 12) != "short" {
		t.Fatal("expected short value to be trimmed only")
	}
}
