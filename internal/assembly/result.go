package assembly

import (
	"time"

	"autoreel/internal/cleanup"
	"autoreel/internal/playlist"
)

// Result describes a finished run.
type Result struct {
	RunID          string            `json:"run_id"`
	Trigger        string            `json:"trigger"`
	Status         string            `json:"status"`
	StartedAt      time.Time         `json:"started_at"`
	FinishedAt     time.Time         `json:"finished_at"`
	OutputPath     string            `json:"output_path,omitempty"`
	DescriptorPath string            `json:"descriptor_path,omitempty"`
	Playlist       playlist.Playlist `json:"playlist"`
	Items          int               `json:"items"`
	Excluded       int               `json:"excluded"`
	Deleted        int               `json:"deleted"`
	Failures       []cleanup.Failure `json:"failures,omitempty"`
}

// Elapsed reports the wall-clock duration of the run.
func (r Result) Elapsed() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Estimate is the cheap length preview computed from source files.
type Estimate struct {
	Items   int     `json:"items"`
	Seconds float64 `json:"seconds"`
}

// Minutes returns the estimate in minutes.
func (e Estimate) Minutes() float64 {
	return e.Seconds / 60
}
