package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"autoreel/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool
	var pruneDays int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent assembly runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			if pruneDays > 0 {
				cutoff := time.Now().Add(-time.Duration(pruneDays) * 24 * time.Hour)
				removed, err := store.Prune(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Pruned %d run(s) older than %d day(s)\n", removed, pruneDays)
			}

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistoryTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print runs as JSON")
	cmd.Flags().IntVar(&pruneDays, "prune-days", 0, "Delete runs older than this many days first")
	return cmd
}

func renderHistoryTable(runs []history.Run) string {
	columns := []column{
		{title: "Started"},
		{title: "Trigger"},
		{title: "Status"},
		{title: "Entries", right: true},
		{title: "Length", right: true},
		{title: "Deleted", right: true},
		{title: "Output"},
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		detail := run.OutputPath
		if run.ErrorMessage != "" {
			detail = run.ErrorMessage
		}
		rows = append(rows, []string{
			run.StartedAt.Local().Format(clockLayout),
			run.Trigger,
			run.Status,
			strconv.Itoa(run.Entries),
			fmt.Sprintf("%.2fs", run.TotalSeconds),
			strconv.Itoa(run.Deleted),
			detail,
		})
	}
	return renderTable(columns, rows)
}
