package concat

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autoreel/internal/logging"
	"autoreel/internal/normalize"
	"autoreel/internal/playlist"
	"autoreel/internal/procexec"
	"autoreel/internal/services"
)

// TimestampLayout is the YYYYMMDD_HHMMSS stamp shared by descriptor and output names.
const TimestampLayout = "20060102_150405"

// Output locates the artifacts of one assembly.
type Output struct {
	VideoPath      string `json:"video_path"`
	DescriptorPath string `json:"descriptor_path"`
	Stamp          string `json:"stamp"`
}

// Engine concatenates playlists with ffmpeg.
type Engine struct {
	ffmpeg  string
	runner  procexec.Runner
	profile normalize.Profile
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRunner injects a custom process runner (primarily for tests).
func WithRunner(r procexec.Runner) Option {
	return func(e *Engine) {
		if r != nil {
			e.runner = r
		}
	}
}

// WithProfile overrides the encoding profile of the final output.
func WithProfile(p normalize.Profile) Option {
	return func(e *Engine) {
		e.profile = p
	}
}

// WithClock overrides the time source used for artifact names.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for concat events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.NewComponentLogger(logger, "concat")
	}
}

// NewEngine constructs an Engine for the given ffmpeg binary.
func NewEngine(ffmpeg string, opts ...Option) *Engine {
	ffmpeg = strings.TrimSpace(ffmpeg)
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	e := &Engine{
		ffmpeg:  ffmpeg,
		runner:  procexec.Default(),
		profile: normalize.DefaultProfile(),
		now:     time.Now,
		logger:  logging.NewComponentLogger(nil, "concat"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Args builds the ffmpeg arguments that demux descriptor and re-encode to output.
func (e *Engine) Args(descriptor, output string) []string {
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", descriptor,
	}
	args = append(args, e.profile.EncodeArgs()...)
	return append(args, output)
}

// Assemble writes the descriptor for pl into outputFolder and renders the
// combined video next to it. The folder is created when absent. On failure a
// partially written video is removed; the descriptor is kept for diagnosis.
func (e *Engine) Assemble(ctx context.Context, pl playlist.Playlist, outputFolder string) (Output, error) {
	ctx = services.WithStage(ctx, "concat")
	logger := logging.WithContext(ctx, e.logger)

	if pl.Empty() {
		return Output{}, services.Wrap(services.ErrValidation, "concat", "assemble", "playlist is empty", nil)
	}
	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return Output{}, services.Wrap(services.ErrConfiguration, "concat", "create output folder", outputFolder, err)
	}

	out, err := e.allocate(outputFolder)
	if err != nil {
		return Output{}, services.Wrap(services.ErrTransient, "concat", "allocate output", outputFolder, err)
	}
	if err := WriteDescriptorFile(out.DescriptorPath, pl); err != nil {
		return Output{}, services.Wrap(services.ErrTransient, "concat", "write descriptor", out.DescriptorPath, err)
	}

	args := e.Args(out.DescriptorPath, out.VideoPath)
	logger.Debug("ffmpeg concat",
		logging.String("descriptor", out.DescriptorPath),
		logging.String("args", strings.Join(args, " ")),
	)
	if _, err := e.runner.Run(ctx, e.ffmpeg, args...); err != nil {
		if rmErr := os.Remove(out.VideoPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Debug("partial output cleanup failed", logging.String("output", out.VideoPath), logging.Error(rmErr))
		}
		return Output{}, services.Wrap(services.ErrExternalTool, "concat", "render "+filepath.Base(out.VideoPath), "ffmpeg failed", err)
	}

	logger.Info("combined video written",
		logging.String(logging.FieldEventType, "concat_complete"),
		logging.String("output", out.VideoPath),
		logging.Int("playlist_entries", pl.Len()),
		logging.Float64("playlist_seconds", pl.TotalSeconds()),
	)
	return out, nil
}

// allocate picks artifact names from the current time, adding a counter when
// an earlier run in the same second already claimed them.
func (e *Engine) allocate(folder string) (Output, error) {
	stamp := e.now().Format(TimestampLayout)
	candidate := stamp
	for i := 2; ; i++ {
		out := Output{
			VideoPath:      filepath.Join(folder, "combined_"+candidate+".mp4"),
			DescriptorPath: filepath.Join(folder, "list_"+candidate+".txt"),
			Stamp:          candidate,
		}
		videoTaken, err := exists(out.VideoPath)
		if err != nil {
			return Output{}, err
		}
		listTaken, err := exists(out.DescriptorPath)
		if err != nil {
			return Output{}, err
		}
		if !videoTaken && !listTaken {
			return out, nil
		}
		candidate = fmt.Sprintf("%s_%d", stamp, i)
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
