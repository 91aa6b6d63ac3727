package assembly

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"autoreel/internal/catalog"
	"autoreel/internal/cleanup"
	"autoreel/internal/concat"
	"autoreel/internal/config"
	"autoreel/internal/deps"
	"autoreel/internal/history"
	"autoreel/internal/logging"
	"autoreel/internal/media/ffprobe"
	"autoreel/internal/metrics"
	"autoreel/internal/normalize"
	"autoreel/internal/notifications"
	"autoreel/internal/playlist"
	"autoreel/internal/procexec"
	"autoreel/internal/services"
	"autoreel/internal/staging"
	"autoreel/internal/trash"
)

// Assembler renders a playlist into the output folder.
type Assembler interface {
	Assemble(ctx context.Context, pl playlist.Playlist, outputFolder string) (concat.Output, error)
}

// RunRecorder persists finished runs.
type RunRecorder interface {
	Record(ctx context.Context, run history.Run) error
}

// Pipeline wires the catalog, normalizer, playlist builder, and concat engine.
type Pipeline struct {
	scratchRoot string
	runner      procexec.Runner
	prober      *ffprobe.Prober
	clips       playlist.ClipSource
	assembler   Assembler
	trasher     trash.Trasher
	recorder    RunRecorder
	metrics     *metrics.Recorder
	notifier    notifications.Service
	notifyAll   bool
	logger      *slog.Logger
	newID       func() string
	now         func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRunner replaces the process runner used for ffmpeg and ffprobe.
func WithRunner(r procexec.Runner) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.runner = r
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logging.NewComponentLogger(logger, "assembly")
	}
}

// WithTrasher sets where deleted sources go. Defaults to the home trash.
func WithTrasher(t trash.Trasher) Option {
	return func(p *Pipeline) {
		p.trasher = t
	}
}

// WithHistory records every run in the given ledger.
func WithHistory(r RunRecorder) Option {
	return func(p *Pipeline) {
		p.recorder = r
	}
}

// WithMetrics reports run outcomes to a Prometheus recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithNotifier announces run outcomes. Watch-triggered runs always notify;
// manual runs notify only when includeManual is set.
func WithNotifier(n notifications.Service, includeManual bool) Option {
	return func(p *Pipeline) {
		p.notifier = n
		p.notifyAll = includeManual
	}
}

// WithAssembler overrides the concat stage.
func WithAssembler(a Assembler) Option {
	return func(p *Pipeline) {
		p.assembler = a
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithIDGenerator overrides run id generation.
func WithIDGenerator(fn func() string) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// New builds a pipeline from configuration. Tool paths are resolved once here.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		scratchRoot: cfg.Paths.ScratchDir,
		runner:      procexec.Default(),
		logger:      logging.NewComponentLogger(nil, "assembly"),
		newID:       func() string { return uuid.NewString() },
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	ffmpeg := deps.ResolveTool(cfg.Tools.FFmpeg)
	profile := normalize.ProfileFromConfig(cfg.Encoding)
	p.prober = ffprobe.NewProber(deps.ResolveTool(cfg.Tools.FFprobe),
		ffprobe.WithRunner(p.runner),
		ffprobe.WithLogger(p.logger),
	)
	p.clips = normalize.New(ffmpeg, p.prober,
		normalize.WithRunner(p.runner),
		normalize.WithProfile(profile),
		normalize.WithLogger(p.logger),
	)
	if p.assembler == nil {
		p.assembler = concat.NewEngine(ffmpeg,
			concat.WithRunner(p.runner),
			concat.WithProfile(profile),
			concat.WithLogger(p.logger),
			concat.WithClock(p.now),
		)
	}
	return p
}

// Run executes one assembly. Configuration errors are returned before any
// external process or scratch workspace is touched. The scratch workspace is
// removed on every exit path.
func (p *Pipeline) Run(ctx context.Context, req Request, trigger string, observer playlist.ProgressObserver) (Result, error) {
	if strings.TrimSpace(trigger) == "" {
		trigger = history.TriggerManual
	}
	result := Result{
		RunID:     p.newID(),
		Trigger:   trigger,
		StartedAt: p.now(),
	}
	ctx = services.WithRunID(ctx, result.RunID)
	ctx = services.WithTrigger(ctx, trigger)
	logger := logging.WithContext(ctx, p.logger)

	err := p.run(ctx, logger, req, observer, &result)
	result.FinishedAt = p.now()
	result.Status = services.Status(err)
	p.finish(ctx, logger, req, result, err)
	return result, err
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, req Request, observer playlist.ProgressObserver, result *Result) error {
	if err := req.Validate(); err != nil {
		return err
	}

	catalogCtx := services.WithStage(ctx, "catalog")
	items, err := catalog.List(req.InputFolder, req.Order)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "catalog", "list input", req.InputFolder, err)
	}
	result.Items = len(items)
	if len(items) == 0 {
		return services.Wrap(services.ErrConfiguration, "catalog", "list input", "no media files in "+req.InputFolder, nil)
	}
	logging.WithContext(catalogCtx, p.logger).Info("catalog listed",
		logging.String(logging.FieldEventType, "catalog_listed"),
		logging.Int("items", len(items)),
		logging.String("order", string(req.Order)),
		logging.String("length", req.Length.String()),
	)

	ws, err := staging.NewWorkspace(p.scratchRoot, result.RunID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "staging", "create workspace", p.scratchRoot, err)
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logging.WarnWithContext(logger, "scratch workspace not removed", "workspace_cleanup_failed",
				logging.String("workspace", ws.Dir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete the directory manually"),
			)
		}
	}()

	observer = playlist.Observer(observer)
	clips, err := playlist.BuildClips(ctx, p.clips, items, req.ImageDurationSeconds, ws.Dir, observer)
	if err != nil {
		return err
	}
	result.Excluded = len(items) - len(clips)

	pl, err := playlist.Build(clips, req.Length)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "playlist", "build", "target too long for the available clips", err)
	}
	if pl.Empty() {
		return services.Wrap(services.ErrValidation, "playlist", "build", "no usable media after normalization", nil)
	}
	result.Playlist = pl

	observer.OnProgress(len(items), len(items), playlist.LabelCombining)
	out, err := p.assembler.Assemble(ctx, pl, req.OutputFolder)
	if err != nil {
		return err
	}
	result.OutputPath = out.VideoPath
	result.DescriptorPath = out.DescriptorPath

	if req.DeleteSources {
		report := cleanup.DeleteSources(items, p.trashService(logger), p.logger)
		result.Deleted = report.Deleted
		result.Failures = report.Failures
	}
	return nil
}

func (p *Pipeline) trashService(logger *slog.Logger) trash.Trasher {
	if p.trasher != nil {
		return p.trasher
	}
	home, err := trash.NewHome()
	if err != nil {
		logger.Warn("home trash unavailable", logging.Error(err))
		return trash.Func(func(string) error { return err })
	}
	p.trasher = home
	return home
}

func (p *Pipeline) finish(ctx context.Context, logger *slog.Logger, req Request, result Result, runErr error) {
	p.metrics.ObserveRun(result.Status, result.Elapsed(), result.Playlist.TotalSeconds(), result.Excluded, len(result.Failures))

	if p.recorder != nil {
		run := history.Run{
			ID:             result.RunID,
			Trigger:        result.Trigger,
			Status:         result.Status,
			StartedAt:      result.StartedAt,
			FinishedAt:     result.FinishedAt,
			OutputPath:     result.OutputPath,
			DescriptorPath: result.DescriptorPath,
			Entries:        result.Playlist.Len(),
			Excluded:       result.Excluded,
			TotalSeconds:   result.Playlist.TotalSeconds(),
			Deleted:        result.Deleted,
			Failures:       result.Failures,
		}
		if runErr != nil {
			run.ErrorMessage = runErr.Error()
		}
		recordCtx := ctx
		if errors.Is(runErr, context.Canceled) {
			recordCtx = context.WithoutCancel(ctx)
		}
		if err := p.recorder.Record(recordCtx, run); err != nil {
			logger.Warn("run history not recorded", logging.Error(err))
		}
	}

	p.notify(ctx, logger, result, runErr)

	if runErr != nil {
		details := services.Details(runErr)
		logger.Error("assembly failed",
			logging.String(logging.FieldEventType, "run_failed"),
			logging.String("status", result.Status),
			logging.String("input", req.InputFolder),
			logging.String("error_message", details.Message),
			logging.Error(runErr),
		)
		return
	}

	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("output", result.OutputPath),
		logging.Int("playlist_entries", result.Playlist.Len()),
		logging.Float64("playlist_seconds", result.Playlist.TotalSeconds()),
		logging.Int("excluded", result.Excluded),
		logging.Duration("elapsed", result.Elapsed()),
	}
	if req.DeleteSources {
		attrs = append(attrs,
			logging.Int("deleted", result.Deleted),
			logging.Int("delete_failures", len(result.Failures)),
		)
	}
	logger.Info("assembly complete", logging.Args(attrs...)...)
}

func (p *Pipeline) notify(ctx context.Context, logger *slog.Logger, result Result, runErr error) {
	if p.notifier == nil || errors.Is(runErr, context.Canceled) {
		return
	}
	if result.Trigger != history.TriggerWatch && !p.notifyAll {
		return
	}
	var err error
	if runErr != nil {
		err = p.notifier.NotifyRunFailed(ctx, result.Trigger, runErr)
	} else {
		err = p.notifier.NotifyRunCompleted(ctx, notifications.RunSummary{
			Trigger:        result.Trigger,
			OutputPath:     result.OutputPath,
			Entries:        result.Playlist.Len(),
			TotalSeconds:   result.Playlist.TotalSeconds(),
			Deleted:        result.Deleted,
			DeleteFailures: len(result.Failures),
			Elapsed:        result.Elapsed(),
		})
	}
	if err != nil {
		logging.WarnWithContext(logger, "notification not delivered", "notification_failed", logging.Error(err))
	}
}

// Estimate sums source durations without transcoding. Images count for the
// request's image duration and unreadable videos count as zero.
func (p *Pipeline) Estimate(ctx context.Context, req Request) (Estimate, error) {
	if !positiveFinite(req.ImageDurationSeconds) {
		return Estimate{}, invalid("image duration must be positive")
	}
	items, err := catalog.List(req.InputFolder, req.Order)
	if err != nil {
		return Estimate{}, services.Wrap(services.ErrConfiguration, "catalog", "list input", req.InputFolder, err)
	}
	seconds := p.prober.Estimate(services.WithStage(ctx, "estimate"), items, req.ImageDurationSeconds)
	return Estimate{Items: len(items), Seconds: seconds}, nil
}

// Prober exposes the duration probe used by the pipeline.
func (p *Pipeline) Prober() *ffprobe.Prober {
	return p.prober
}
