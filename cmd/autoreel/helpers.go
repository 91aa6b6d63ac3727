package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"autoreel/internal/assembly"
	"autoreel/internal/catalog"
	"autoreel/internal/config"
	"autoreel/internal/deps"
	"autoreel/internal/notifications"
	"autoreel/internal/playlist"
	"autoreel/internal/preflight"
	"autoreel/internal/services"
	"autoreel/internal/staging"
)

// requestFlags are the per-invocation overrides shared by run, estimate, list and watch.
type requestFlags struct {
	input         string
	output        string
	order         string
	natural       bool
	minutes       float64
	imageSeconds  float64
	deleteSources bool
}

func (f *requestFlags) bind(cmd *cobra.Command, withAssembly bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "Input folder (default: paths.input_dir)")
	flags.StringVar(&f.order, "order", "", "Order: name, date_newest, date_oldest, random")
	flags.Float64Var(&f.imageSeconds, "image-seconds", 0, "Seconds each still image is shown")
	if !withAssembly {
		return
	}
	flags.StringVarP(&f.output, "output", "o", "", "Output folder (default: paths.output_dir)")
	flags.BoolVar(&f.natural, "natural", false, "Use every clip once instead of a fixed target length")
	flags.Float64VarP(&f.minutes, "minutes", "m", 0, "Fixed target length in minutes")
	flags.BoolVar(&f.deleteSources, "delete-sources", false, "Move source files to the trash after success")
}

func (f *requestFlags) request(cmd *cobra.Command, cfg *config.Config) (assembly.Request, error) {
	req, err := assembly.RequestFromConfig(cfg)
	if err != nil {
		return assembly.Request{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		if req.InputFolder, err = config.ExpandPath(strings.TrimSpace(f.input)); err != nil {
			return assembly.Request{}, err
		}
	}
	if flags.Changed("output") {
		if req.OutputFolder, err = config.ExpandPath(strings.TrimSpace(f.output)); err != nil {
			return assembly.Request{}, err
		}
	}
	if flags.Changed("order") {
		order, err := catalog.ParseOrder(f.order)
		if err != nil {
			return assembly.Request{}, services.Wrap(services.ErrConfiguration, "cli", "parse flags", "--order", err)
		}
		req.Order = order
	}
	if flags.Changed("image-seconds") {
		req.ImageDurationSeconds = f.imageSeconds
	}
	switch {
	case flags.Changed("minutes"):
		req.Length = playlist.FixedLength(f.minutes)
	case flags.Changed("natural") && f.natural:
		req.Length = playlist.NaturalLength()
	}
	if flags.Changed("delete-sources") {
		req.DeleteSources = f.deleteSources
	}
	return req, nil
}

// requireTools fails with a configuration error when ffmpeg or ffprobe are missing.
func requireTools(ctx context.Context, cfg *config.Config) error {
	missing := deps.MissingRequired(preflight.CheckSystemDeps(ctx, cfg))
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "check tools",
		"missing "+strings.Join(missing, ", ")+"; install them or set [tools] in the config", nil)
}

func sweepScratch(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	maxAge := time.Duration(cfg.Watch.StaleScratchHours) * time.Hour
	staging.CleanStale(ctx, cfg.Paths.ScratchDir, maxAge, logger)
}

func newPipeline(ctx *commandContext, cfg *config.Config, opts ...assembly.Option) *assembly.Pipeline {
	base := []assembly.Option{
		assembly.WithLogger(ctx.ensureLogger()),
		assembly.WithNotifier(notifications.NewService(cfg), cfg.Notifications.NotifyManualRuns),
	}
	return assembly.New(cfg, append(base, opts...)...)
}
