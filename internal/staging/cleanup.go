package staging

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autoreel/internal/logging"
)

// DirInfo describes one workspace found under the scratch root.
type DirInfo struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	ModTime time.Time `json:"modified"`
	Size    int64     `json:"size_bytes"`
}

// CleanupError pairs a directory with the error that kept it in place.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStaleResult lists what a sweep removed and what it could not.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// ListWorkspaces returns the run-* directories under scratchRoot with their
// total file size. A missing root is not an error.
func ListWorkspaces(scratchRoot string) ([]DirInfo, error) {
	found, err := scan(scratchRoot)
	if err != nil {
		return nil, err
	}
	for i := range found {
		found[i].Size = dirSize(found[i].Path)
	}
	return found, nil
}

// CleanStale removes workspaces under scratchRoot last modified more than
// maxAge ago. A non-positive maxAge or an empty root disables the sweep.
func CleanStale(ctx context.Context, scratchRoot string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	var result CleanStaleResult
	if maxAge <= 0 || strings.TrimSpace(scratchRoot) == "" {
		return result
	}
	logger = logging.NewComponentLogger(logger, "staging")

	found, err := scan(scratchRoot)
	if err != nil {
		result.Errors = append(result.Errors, CleanupError{Path: scratchRoot, Error: err})
		return result
	}
	cutoff := time.Now().Add(-maxAge)
	for _, ws := range found {
		if ctx.Err() != nil {
			break
		}
		if ws.ModTime.After(cutoff) {
			continue
		}
		if err := os.RemoveAll(ws.Path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: ws.Path, Error: err})
			logging.WarnWithContext(logger, "stale scratch workspace not removed", "workspace_cleanup_failed",
				logging.String("path", ws.Path),
				logging.Error(err),
			)
			continue
		}
		result.Removed = append(result.Removed, ws.Path)
		logger.Info("removed stale scratch workspace",
			logging.String("path", ws.Path),
			logging.Duration("age", time.Since(ws.ModTime)),
			logging.String(logging.FieldEventType, "workspace_swept"),
		)
	}
	return result
}

// scan lists workspace directories without sizing them.
func scan(scratchRoot string) ([]DirInfo, error) {
	scratchRoot = strings.TrimSpace(scratchRoot)
	if scratchRoot == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(scratchRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []DirInfo
	for _, e := range entries {
		if !e.IsDir() || !IsWorkspaceDir(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, DirInfo{
			Name:    e.Name(),
			Path:    filepath.Join(scratchRoot, e.Name()),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}

func dirSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && d.Type().IsRegular() {
			if info, ierr := d.Info(); ierr == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}
