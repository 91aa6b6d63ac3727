package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"autoreel/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckInputFolder_MissingPasses(t *testing.T) {
	result := CheckInputFolder("input", filepath.Join(t.TempDir(), "nope"))
	if !result.Passed {
		t.Fatalf("expected missing input folder to pass, got: %s", result.Detail)
	}
}

func stubTool(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAll(t *testing.T) {
	binDir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(t.TempDir(), "missing-input")
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.ScratchDir = ""
	cfg.Tools.FFmpeg = stubTool(t, binDir, "ffmpeg")
	cfg.Tools.FFprobe = filepath.Join(binDir, "absent-ffprobe")

	results := RunAll(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %+v", results)
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "FFprobe" {
		t.Fatalf("expected only FFprobe to fail, got %+v", failed)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}
