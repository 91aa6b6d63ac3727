package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"autoreel/internal/assembly"
	"autoreel/internal/history"
	"autoreel/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags requestFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Assemble the input folder into one video",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := flags.request(cmd, cfg)
			if err != nil {
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

			pipeline := newPipeline(ctx, cfg, assembly.WithHistory(store))
			progress := newProgressReporter(cmd.ErrOrStderr(), logger, jsonOut)
			result, err := pipeline.Run(signalCtx, req, history.TriggerManual, progress)
			progress.finish()
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, result)
			}
			printRunSummary(cmd.OutOrStdout(), result, req.DeleteSources)
			logger.Debug("run command finished", logging.String(logging.FieldRunID, result.RunID))
			return nil
		},
	}

	flags.bind(cmd, true)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run result as JSON")
	return cmd
}

func printRunSummary(out io.Writer, result assembly.Result, deleted bool) {
	fmt.Fprintf(out, "Output:     %s\n", result.OutputPath)
	fmt.Fprintf(out, "Descriptor: %s\n", result.DescriptorPath)
	fmt.Fprintf(out, "Entries:    %d (%d excluded)\n", result.Playlist.Len(), result.Excluded)
	fmt.Fprintf(out, "Length:     %s\n", formatSeconds(result.Playlist.TotalSeconds()))
	if !deleted {
		return
	}
	fmt.Fprintf(out, "Deleted:    %d source(s)\n", result.Deleted)
	if len(result.Failures) == 0 {
		return
	}
	fmt.Fprintf(out, "Not deleted (%d):\n", len(result.Failures))
	for _, f := range result.Failures {
		fmt.Fprintf(out, "  - %s: %s\n", f.Name, f.Reason)
	}
}
