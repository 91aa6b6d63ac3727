package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestCheckBinaries(t *testing.T) {
	present := filepath.Join(t.TempDir(), "present")
	writeStub(t, present)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  ", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for unset command: %q", results[2].Detail)
	}

	missing := MissingRequired(results)
	if len(missing) != 1 || missing[0] != "Missing" {
		t.Fatalf("unexpected missing list %v", missing)
	}
}

func TestResolveToolPrefersSidecar(t *testing.T) {
	exeDir := t.TempDir()
	sidecar := filepath.Join(exeDir, executableName("ffmpeg"))
	writeStub(t, sidecar)
	writeStub(t, filepath.Join(exeDir, "bin", executableName("ffmpeg")))

	if got := resolveTool("ffmpeg", exeDir); got != sidecar {
		t.Fatalf("expected sidecar %q, got %q", sidecar, got)
	}
}

func TestResolveToolFallsBackToBinDir(t *testing.T) {
	exeDir := t.TempDir()
	binTool := filepath.Join(exeDir, "bin", executableName("ffprobe"))
	writeStub(t, binTool)

	if got := resolveTool("ffprobe", exeDir); got != binTool {
		t.Fatalf("expected bin tool %q, got %q", binTool, got)
	}
}

func TestResolveToolFallsBackToPath(t *testing.T) {
	pathDir := t.TempDir()
	onPath := filepath.Join(pathDir, executableName("autoreel-test-tool"))
	writeStub(t, onPath)
	t.Setenv("PATH", pathDir)

	if got := resolveTool("autoreel-test-tool", t.TempDir()); got != onPath {
		t.Fatalf("expected PATH lookup %q, got %q", onPath, got)
	}
}

func TestResolveToolKeepsExplicitPaths(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "custom", "ffmpeg")
	if got := resolveTool(explicit, t.TempDir()); got != explicit {
		t.Fatalf("expected explicit path untouched, got %q", got)
	}
	if got := resolveTool("not-anywhere-tool", t.TempDir()); got != "not-anywhere-tool" {
		t.Fatalf("expected bare name fallback, got %q", got)
	}
}
