package assembly

import (
	"fmt"
	"math"
	"strings"

	"autoreel/internal/catalog"
	"autoreel/internal/config"
	"autoreel/internal/playlist"
	"autoreel/internal/services"
)

// Request holds the parameters of one pipeline invocation.
type Request struct {
	InputFolder          string
	OutputFolder         string
	Order                catalog.OrderPolicy
	Length               playlist.LengthPolicy
	ImageDurationSeconds float64
	DeleteSources        bool
}

// RequestFromConfig builds a request from loaded configuration.
func RequestFromConfig(cfg *config.Config) (Request, error) {
	if cfg == nil {
		return Request{}, services.Wrap(services.ErrConfiguration, "assembly", "build request", "config unavailable", nil)
	}
	order, err := catalog.ParseOrder(cfg.Assembly.Order)
	if err != nil {
		return Request{}, services.Wrap(services.ErrConfiguration, "assembly", "build request", "invalid order", err)
	}
	length := playlist.FixedLength(cfg.Assembly.TargetMinutes)
	if cfg.Assembly.Natural {
		length = playlist.NaturalLength()
	}
	return Request{
		InputFolder:          cfg.Paths.InputDir,
		OutputFolder:         cfg.Paths.OutputDir,
		Order:                order,
		Length:               length,
		ImageDurationSeconds: cfg.Assembly.ImageDurationSeconds,
		DeleteSources:        cfg.Assembly.DeleteSources,
	}, nil
}

// Validate rejects requests that can never produce a video.
func (r Request) Validate() error {
	if strings.TrimSpace(r.InputFolder) == "" {
		return invalid("input folder is required")
	}
	if strings.TrimSpace(r.OutputFolder) == "" {
		return invalid("output folder is required")
	}
	if _, err := catalog.ParseOrder(string(r.Order)); err != nil {
		return invalid(err.Error())
	}
	if !positiveFinite(r.ImageDurationSeconds) {
		return invalid(fmt.Sprintf("image duration must be positive, got %g", r.ImageDurationSeconds))
	}
	if !r.Length.Natural && !positiveFinite(r.Length.TargetMinutes) {
		return invalid(fmt.Sprintf("target minutes must be positive, got %g", r.Length.TargetMinutes))
	}
	if !r.Length.Natural && r.Length.TargetMinutes > playlist.MaxTargetMinutes {
		return invalid(fmt.Sprintf("target minutes must be at most %d, got %g", playlist.MaxTargetMinutes, r.Length.TargetMinutes))
	}
	return nil
}

func invalid(message string) error {
	return services.Wrap(services.ErrConfiguration, "assembly", "validate request", message, nil)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
