package trash

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestTrash(t *testing.T) *Home {
	t.Helper()
	h := NewAt(filepath.Join(t.TempDir(), "Trash"))
	h.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local) }
	return h
}

func TestTrashMovesFileAndWritesInfo(t *testing.T) {
	h := newTestTrash(t)
	src := filepath.Join(t.TempDir(), "my clip.mp4")
	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := h.Trash(src); err != nil {
		t.Fatalf("Trash: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.Dir(), "files", "my clip.mp4")); err != nil {
		t.Fatalf("trashed file missing: %v", err)
	}
	info, err := os.ReadFile(filepath.Join(h.Dir(), "info", "my clip.mp4.trashinfo"))
	if err != nil {
		t.Fatalf("read trashinfo: %v", err)
	}
	text := string(info)
	if !strings.HasPrefix(text, "[Trash Info]\n") {
		t.Fatalf("unexpected header: %q", text)
	}
	if !strings.Contains(text, "my%20clip.mp4") {
		t.Fatalf("expected percent-encoded path, got %q", text)
	}
	if !strings.Contains(text, "DeletionDate=2025-01-02T03:04:05") {
		t.Fatalf("unexpected deletion date: %q", text)
	}
}

func TestTrashNameCollisionsGetSuffix(t *testing.T) {
	h := newTestTrash(t)
	for i := 0; i < 2; i++ {
		src := filepath.Join(t.TempDir(), "a.jpg")
		if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := h.Trash(src); err != nil {
			t.Fatalf("Trash %d: %v", i, err)
		}
	}
	for _, name := range []string{"a.jpg", "a.2.jpg"} {
		if _, err := os.Stat(filepath.Join(h.Dir(), "files", name)); err != nil {
			t.Fatalf("expected %s in trash: %v", name, err)
		}
	}
}

func TestTrashMissingFile(t *testing.T) {
	h := newTestTrash(t)
	err := h.Trash(filepath.Join(t.TempDir(), "gone.mp4"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewHomeHonoursXDGDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	h, err := NewHome()
	if err != nil {
		t.Fatalf("NewHome: %v", err)
	}
	if h.Dir() != filepath.Join(dataHome, "Trash") {
		t.Fatalf("unexpected trash dir %q", h.Dir())
	}
}
