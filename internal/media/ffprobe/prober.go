package ffprobe

import (
	"context"
	"log/slog"
	"strings"

	"autoreel/internal/catalog"
	"autoreel/internal/logging"
	"autoreel/internal/procexec"
)

// Prober looks up playable durations.
type Prober struct {
	binary string
	runner procexec.Runner
	logger *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithRunner injects a custom process runner (primarily for tests).
func WithRunner(r procexec.Runner) Option {
	return func(p *Prober) {
		if r != nil {
			p.runner = r
		}
	}
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logging.NewComponentLogger(logger, "ffprobe")
	}
}

// NewProber constructs a Prober for the given ffprobe binary.
func NewProber(binary string, opts ...Option) *Prober {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	p := &Prober{
		binary: binary,
		runner: procexec.Default(),
		logger: logging.NewComponentLogger(nil, "ffprobe"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DurationArgs returns the ffprobe arguments that print only the container duration.
func DurationArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}

// Duration returns the container duration of path in seconds. Any failure
// (missing binary, unreadable file, non-zero exit, unparsable output) yields 0.
func (p *Prober) Duration(ctx context.Context, path string) float64 {
	out, err := p.runner.Run(ctx, p.binary, DurationArgs(path)...)
	if err != nil {
		p.logger.Debug("duration probe failed",
			logging.String("path", path),
			logging.Error(err),
		)
		return 0
	}
	seconds := usable(parseFloat(firstLine(string(out.Stdout))))
	if seconds == 0 {
		p.logger.Debug("duration probe returned no usable value",
			logging.String("path", path),
			logging.String("stdout", strings.TrimSpace(string(out.Stdout))),
		)
	}
	return seconds
}

// ItemDuration returns imageSeconds for stills and the probed duration for videos.
func (p *Prober) ItemDuration(ctx context.Context, item catalog.Item, imageSeconds float64) float64 {
	if item.IsImage() {
		return imageSeconds
	}
	return p.Duration(ctx, item.Path)
}

// Estimate sums ItemDuration over items without transcoding anything.
func (p *Prober) Estimate(ctx context.Context, items []catalog.Item, imageSeconds float64) float64 {
	total := 0.0
	for _, item := range items {
		total += p.ItemDuration(ctx, item, imageSeconds)
	}
	return total
}

// Inspect returns the full stream and format report for path.
func (p *Prober) Inspect(ctx context.Context, path string) (Result, error) {
	return Inspect(ctx, p.runner, p.binary, path)
}

func firstLine(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.IndexAny(value, "\r\n"); idx >= 0 {
		return value[:idx]
	}
	return value
}
