package normalize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"autoreel/internal/catalog"
	"autoreel/internal/logging"
	"autoreel/internal/media/ffprobe"
	"autoreel/internal/procexec"
	"autoreel/internal/services"
)

// Clip is one normalized source ready for the playlist.
type Clip struct {
	Path            string       `json:"path"`
	DurationSeconds float64      `json:"duration_seconds"`
	Source          catalog.Item `json:"source"`
}

// Usable reports whether the clip contributes playable time.
func (c Clip) Usable() bool {
	return c.DurationSeconds > 0
}

const (
	videoSuffix = "_norm"
	imageSuffix = "_img"
	clipExt     = ".mp4"
)

// Normalizer converts catalog items into clips using ffmpeg.
type Normalizer struct {
	ffmpeg      string
	runner      procexec.Runner
	prober      *ffprobe.Prober
	profile     Profile
	orientStill bool
	logger      *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithRunner injects a custom process runner (primarily for tests).
func WithRunner(r procexec.Runner) Option {
	return func(n *Normalizer) {
		if r != nil {
			n.runner = r
		}
	}
}

// WithProfile overrides the encoding profile.
func WithProfile(p Profile) Option {
	return func(n *Normalizer) {
		n.profile = p
	}
}

// WithLogger sets the logger used for normalization events.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logging.NewComponentLogger(logger, "normalizer")
	}
}

// WithStillOrientation toggles EXIF-aware preprocessing of images.
func WithStillOrientation(enabled bool) Option {
	return func(n *Normalizer) {
		n.orientStill = enabled
	}
}

// New constructs a Normalizer. prober re-measures normalized videos.
func New(ffmpeg string, prober *ffprobe.Prober, opts ...Option) *Normalizer {
	ffmpeg = strings.TrimSpace(ffmpeg)
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	n := &Normalizer{
		ffmpeg:      ffmpeg,
		runner:      procexec.Default(),
		prober:      prober,
		profile:     DefaultProfile(),
		orientStill: true,
		logger:      logging.NewComponentLogger(nil, "normalizer"),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.prober == nil {
		n.prober = ffprobe.NewProber("", ffprobe.WithRunner(n.runner))
	}
	return n
}

// Profile returns the encoding profile in use.
func (n *Normalizer) Profile() Profile {
	return n.profile
}

// Normalize re-encodes item into scratchDir. A clip whose duration is not
// positive is returned without error; callers exclude it.
func (n *Normalizer) Normalize(ctx context.Context, item catalog.Item, imageSeconds float64, scratchDir string) (Clip, error) {
	ctx = services.WithStage(ctx, "normalize")
	logger := logging.WithContext(ctx, n.logger)
	stem := strings.TrimSuffix(item.Name(), filepath.Ext(item.Name()))

	if item.IsImage() {
		output, err := uniquePath(scratchDir, stem+imageSuffix, clipExt)
		if err != nil {
			return Clip{}, services.Wrap(services.ErrTransient, "normalize", "allocate clip", item.Name(), err)
		}
		input := item.Path
		if n.orientStill {
			prepared, err := prepareStill(item.Path, scratchDir, strings.TrimSuffix(filepath.Base(output), clipExt), n.profile)
			if err != nil {
				logger.Debug("still preprocessing skipped",
					logging.String("source", item.Path),
					logging.Error(err),
				)
			} else {
				input = prepared
			}
		}
		if err := n.transcode(ctx, item, n.profile.ImageArgs(input, imageSeconds, output)); err != nil {
			return Clip{}, err
		}
		return Clip{Path: output, DurationSeconds: imageSeconds, Source: item}, nil
	}

	output, err := uniquePath(scratchDir, stem+videoSuffix, clipExt)
	if err != nil {
		return Clip{}, services.Wrap(services.ErrTransient, "normalize", "allocate clip", item.Name(), err)
	}
	if err := n.transcode(ctx, item, n.profile.VideoArgs(item.Path, output)); err != nil {
		return Clip{}, err
	}
	seconds := n.prober.Duration(ctx, output)
	if seconds <= 0 {
		logger.Info("clip excluded",
			logging.String(logging.FieldEventType, "clip_excluded"),
			logging.String("source", item.Name()),
			logging.String("reason", "no usable duration after normalization"),
		)
	}
	return Clip{Path: output, DurationSeconds: seconds, Source: item}, nil
}

func (n *Normalizer) transcode(ctx context.Context, item catalog.Item, args []string) error {
	logger := logging.WithContext(ctx, n.logger)
	logger.Debug("ffmpeg normalize",
		logging.String("source", item.Path),
		logging.String("args", strings.Join(args, " ")),
	)
	if _, err := n.runner.Run(ctx, n.ffmpeg, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "normalize", "transcode "+item.Name(), "ffmpeg failed", err)
	}
	return nil
}

// uniquePath returns dir/stem+ext, adding _2, _3, ... when a sibling with the
// same stem (e.g. a.mp4 and a.mov) already produced that name.
func uniquePath(dir, stem, ext string) (string, error) {
	candidate := filepath.Join(dir, stem+ext)
	for i := 2; ; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}
