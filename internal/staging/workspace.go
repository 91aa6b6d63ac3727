package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// dirPrefix marks directories owned by autoreel so sweeps never touch
// unrelated siblings in a shared temp directory.
const dirPrefix = "run-"

// Workspace is the scratch directory of one run.
type Workspace struct {
	RunID string
	Dir   string
}

// NewWorkspace creates root/run-<runID>.
func NewWorkspace(root, runID string) (*Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = filepath.Join(os.TempDir(), "autoreel")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, errors.New("workspace: empty run id")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}
	dir := filepath.Join(root, dirPrefix+runID)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{RunID: runID, Dir: dir}, nil
}

// Close removes the workspace and everything in it. It is safe to call twice.
func (w *Workspace) Close() error {
	if w == nil || w.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}

// IsWorkspaceDir reports whether name looks like a directory created by NewWorkspace.
func IsWorkspaceDir(name string) bool {
	return strings.HasPrefix(name, dirPrefix) && len(name) > len(dirPrefix)
}
