package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFile writes size filler bytes to path, creating parent directories.
// Sizes below one are written as a single byte.
func WriteFile(t testing.TB, path string, size int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, bytes.Repeat([]byte{'B'}, max(size, 1)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMedia creates a placeholder file named name in dir and returns its
// path. A non-zero modTime is stamped onto the file.
func WriteMedia(t testing.TB, dir, name string, modTime time.Time) string {
	t.Helper()

	path := filepath.Join(dir, name)
	WriteFile(t, path, 16)
	if modTime.IsZero() {
		return path
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
	return path
}
