package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEstimateCommand(ctx *commandContext) *cobra.Command {
	var flags requestFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Preview the natural length of the input folder without transcoding",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := flags.request(cmd, cfg)
			if err != nil {
				return err
			}

			pipeline := newPipeline(ctx, cfg)
			estimate, err := pipeline.Estimate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, struct {
					Items   int     `json:"items"`
					Seconds float64 `json:"seconds"`
					Minutes float64 `json:"minutes"`
				}{estimate.Items, estimate.Seconds, estimate.Minutes()})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Items:  %d\n", estimate.Items)
			fmt.Fprintf(out, "Length: %s\n", formatSeconds(estimate.Seconds))
			return nil
		},
	}

	flags.bind(cmd, false)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the estimate as JSON")
	return cmd
}
