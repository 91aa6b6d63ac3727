package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"autoreel/internal/history"
	"autoreel/internal/preflight"
	"autoreel/internal/staging"
)

type statusReport struct {
	ConfigPath string             `json:"config_path"`
	Checks     []preflight.Result `json:"checks"`
	LastRun    *history.Run       `json:"last_run,omitempty"`
	Scratch    []staging.DirInfo  `json:"scratch,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check folders and tools, and show the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			report := statusReport{
				ConfigPath: ctx.configPath,
				Checks:     preflight.RunAll(cmd.Context(), cfg),
			}
			if report.Scratch, err = staging.ListWorkspaces(cfg.Paths.ScratchDir); err != nil {
				return err
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()
			if report.LastRun, err = store.Last(cmd.Context()); err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			p := newPrinter(out)
			lines := p.heading("Checks")
			for _, check := range report.Checks {
				t := toneGood
				if !check.Passed {
					t = toneBad
				}
				lines = append(lines, p.check(check.Name, t, check.Detail))
			}
			lines = append(lines, scratchLine(p, report.Scratch))
			lines = append(lines, "")
			lines = append(lines, p.heading("Last run")...)
			lines = append(lines, lastRunLines(p, report.LastRun)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print status as JSON")
	return cmd
}

func lastRunLines(p printer, run *history.Run) []string {
	if run == nil {
		return []string{p.check("Status", toneInfo, "no runs recorded")}
	}
	t := toneGood
	switch run.Status {
	case "rejected", "canceled":
		t = toneWarn
	case "failed":
		t = toneBad
	}
	lines := []string{
		p.check("Status", t, run.Status),
		p.check("Trigger", toneInfo, run.Trigger),
		p.check("Started", toneInfo, run.StartedAt.Local().Format(clockLayout)),
	}
	if run.ErrorMessage != "" {
		return append(lines, p.check("Error", toneBad, run.ErrorMessage))
	}
	return append(lines,
		p.check("Output", toneInfo, run.OutputPath),
		p.check("Length", toneInfo, formatSeconds(run.TotalSeconds)),
	)
}

// scratchLine flags workspaces left behind by runs that did not finish.
func scratchLine(p printer, found []staging.DirInfo) string {
	if len(found) == 0 {
		return p.check("Scratch", toneGood, "no leftover workspaces")
	}
	var size int64
	for _, ws := range found {
		size += ws.Size
	}
	return p.check("Scratch", toneWarn, fmt.Sprintf("%d leftover workspace(s), %.1f MiB", len(found), float64(size)/(1<<20)))
}
