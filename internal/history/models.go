package history

import (
	"time"

	"autoreel/internal/cleanup"
)

// Trigger values recorded for each run.
const (
	TriggerManual = "manual"
	TriggerWatch  = "watch"
)

// Run is one recorded assembly attempt.
type Run struct {
	ID             string            `json:"id"`
	Trigger        string            `json:"trigger"`
	Status         string            `json:"status"`
	StartedAt      time.Time         `json:"started_at"`
	FinishedAt     time.Time         `json:"finished_at"`
	OutputPath     string            `json:"output_path,omitempty"`
	DescriptorPath string            `json:"descriptor_path,omitempty"`
	Entries        int               `json:"entries"`
	Excluded       int               `json:"excluded"`
	TotalSeconds   float64           `json:"total_seconds"`
	Deleted        int               `json:"deleted"`
	Failures       []cleanup.Failure `json:"failures,omitempty"`
	ErrorMessage   string            `json:"error,omitempty"`
}

// Duration reports how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
