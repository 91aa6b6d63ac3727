package trash

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"autoreel/internal/fileutil"
)

// ErrNotFound reports that the file to trash does not exist.
var ErrNotFound = errors.New("not found")

// Trasher sends a single file to a recoverable trash.
type Trasher interface {
	Trash(path string) error
}

// Func adapts a function to the Trasher interface.
type Func func(path string) error

// Trash calls f.
func (f Func) Trash(path string) error {
	return f(path)
}

// Home is the freedesktop.org home trash.
type Home struct {
	dir string
	now func() time.Time
}

// NewHome returns the home trash rooted at $XDG_DATA_HOME/Trash
// (~/.local/share/Trash when unset).
func NewHome() (*Home, error) {
	dataHome := strings.TrimSpace(os.Getenv("XDG_DATA_HOME"))
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return NewAt(filepath.Join(dataHome, "Trash")), nil
}

// NewAt returns a trash rooted at dir.
func NewAt(dir string) *Home {
	return &Home{dir: dir, now: time.Now}
}

// Dir returns the trash root.
func (h *Home) Dir() string {
	return h.dir
}

// Trash moves path into the trash. A missing path yields ErrNotFound.
func (h *Home) Trash(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Lstat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}

	filesDir := filepath.Join(h.dir, "files")
	infoDir := filepath.Join(h.dir, "info")
	for _, dir := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("prepare trash: %w", err)
		}
	}

	name, infoPath, err := h.reserve(infoDir, filepath.Base(abs), abs)
	if err != nil {
		return err
	}
	if err := fileutil.MoveFile(abs, filepath.Join(filesDir, name)); err != nil {
		_ = os.Remove(infoPath)
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("move to trash: %w", err)
	}
	return nil
}

// reserve claims a unique trash name by exclusively creating its .trashinfo file.
func (h *Home) reserve(infoDir, base, original string) (string, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	info := trashInfo(original, h.now())

	for i := 1; ; i++ {
		name := base
		if i > 1 {
			name = stem + "." + strconv.Itoa(i) + ext
		}
		infoPath := filepath.Join(infoDir, name+".trashinfo")
		file, err := os.OpenFile(infoPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("reserve trash entry: %w", err)
		}
		_, writeErr := file.WriteString(info)
		closeErr := file.Close()
		if err := errors.Join(writeErr, closeErr); err != nil {
			_ = os.Remove(infoPath)
			return "", "", fmt.Errorf("write trash info: %w", err)
		}
		return name, infoPath, nil
	}
}

func trashInfo(original string, deleted time.Time) string {
	encoded := (&url.URL{Path: original}).EscapedPath()
	return "[Trash Info]\nPath=" + encoded + "\nDeletionDate=" + deleted.Format("2006-01-02T15:04:05") + "\n"
}
