// Package cleanup removes source files after a successful assembly.
package cleanup

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"autoreel/internal/catalog"
	"autoreel/internal/logging"
	"autoreel/internal/trash"
)

// ReasonNotFound is reported for sources that vanished before deletion.
const ReasonNotFound = "not found"

// Failure describes one source that could not be trashed.
type Failure struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Report summarizes a deletion pass.
type Report struct {
	Deleted  int       `json:"deleted"`
	Failures []Failure `json:"failures,omitempty"`
}

// DeleteSources trashes every item independently. Failures are collected and
// never undo earlier deletions.
func DeleteSources(items []catalog.Item, t trash.Trasher, logger *slog.Logger) Report {
	logger = logging.NewComponentLogger(logger, "cleanup")
	report := Report{}
	for _, item := range items {
		name := filepath.Base(item.Path)
		if err := deleteOne(item.Path, t); err != nil {
			reason := err.Error()
			if errors.Is(err, trash.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
				reason = ReasonNotFound
			}
			report.Failures = append(report.Failures, Failure{Path: item.Path, Name: name, Reason: reason})
			logging.WarnWithContext(logger, "source not deleted", "source_delete_failed",
				logging.String("source", name),
				logging.String("reason", reason),
				logging.String(logging.FieldErrorHint, "remove the file manually"),
				logging.String(logging.FieldImpact, "source remains in the input folder"),
			)
			continue
		}
		report.Deleted++
		logger.Debug("source trashed", logging.String("source", item.Path))
	}
	return report
}

func deleteOne(path string, t trash.Trasher) error {
	if _, err := os.Lstat(path); err != nil {
		return err
	}
	return t.Trash(path)
}
