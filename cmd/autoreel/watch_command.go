package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"autoreel/internal/assembly"
	"autoreel/internal/logging"
	"autoreel/internal/metrics"
	"autoreel/internal/notifications"
	"autoreel/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags requestFlags
	var noAuto bool
	var interval time.Duration
	var fsEvents bool
	var metricsBind string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Assemble once, then re-assemble whenever the input folder changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := flags.request(cmd, cfg)
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := requireTools(signalCtx, cfg); err != nil {
				return err
			}
			sweepScratch(signalCtx, cfg, logger)

			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			recorder := metrics.New()
			bind := cfg.Watch.MetricsBind
			if cmd.Flags().Changed("metrics-bind") {
				bind = metricsBind
			}
			if bind != "" {
				go func() {
					if err := recorder.Serve(signalCtx, bind, logger); err != nil {
						logging.WarnWithContext(logger, "metrics endpoint stopped", "metrics_serve_failed",
							logging.String("bind", bind), logging.Error(err))
					}
				}()
			}

			pollEvery := time.Duration(cfg.Watch.IntervalMS) * time.Millisecond
			if cmd.Flags().Changed("interval") {
				pollEvery = interval
			}
			useEvents := cfg.Watch.FSEvents
			if cmd.Flags().Changed("fs-events") {
				useEvents = fsEvents
			}

			out := cmd.OutOrStdout()
			progress := newProgressReporter(cmd.ErrOrStderr(), logger, false)
			pipeline := newPipeline(ctx, cfg, assembly.WithHistory(store), assembly.WithMetrics(recorder))
			w := watcher.New(pipeline, req,
				watcher.WithInterval(pollEvery),
				watcher.WithFSEvents(useEvents),
				watcher.WithAuto(!noAuto),
				watcher.WithObserver(progress),
				watcher.WithLogger(logger),
				watcher.WithNotifier(notifications.NewService(cfg)),
				watcher.WithInitialRun(func(result assembly.Result) {
					progress.finish()
					printRunSummary(out, result, req.DeleteSources)
					if noAuto {
						fmt.Fprintln(out, "Watching for changes (auto re-run off)")
					} else {
						fmt.Fprintln(out, "Watching for changes")
					}
				}),
			)

			err = w.Run(signalCtx)
			progress.finish()
			return err
		},
	}

	flags.bind(cmd, true)
	cmd.Flags().BoolVar(&noAuto, "no-auto", false, "Report changes without re-running")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (default: watch.interval_ms)")
	cmd.Flags().BoolVar(&fsEvents, "fs-events", false, "Use filesystem notifications to poll sooner")
	cmd.Flags().StringVar(&metricsBind, "metrics-bind", "", "Serve Prometheus metrics on this address (default: watch.metrics_bind)")
	return cmd
}
