package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autoreel/internal/catalog"
	"autoreel/internal/services"
)

type listedItem struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	Kind       string  `json:"kind"`
	Modified   string  `json:"modified"`
	Seconds    float64 `json:"seconds,omitempty"`
	Resolution string  `json:"resolution,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var flags requestFlags
	var probe bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the input catalog in assembly order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := flags.request(cmd, cfg)
			if err != nil {
				return err
			}
			items, err := catalog.List(req.InputFolder, req.Order)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "catalog", "list input", req.InputFolder, err)
			}

			prober := newPipeline(ctx, cfg).Prober()
			listed := make([]listedItem, 0, len(items))
			for _, item := range items {
				entry := listedItem{
					Name:     item.Name(),
					Path:     item.Path,
					Kind:     string(item.Kind),
					Modified: item.Modified.Format(clockLayout),
				}
				if probe {
					if report, err := prober.Inspect(cmd.Context(), item.Path); err == nil {
						entry.Resolution = report.Resolution()
						entry.Seconds = report.DurationSeconds()
					}
					if item.IsImage() {
						entry.Seconds = req.ImageDurationSeconds
					}
				}
				listed = append(listed, entry)
			}

			if jsonOut {
				return writeJSON(cmd, listed)
			}
			out := cmd.OutOrStdout()
			if len(listed) == 0 {
				fmt.Fprintf(out, "No media files in %s\n", req.InputFolder)
				return nil
			}

			columns := []column{{title: "#", right: true}, {title: "Name"}, {title: "Kind"}, {title: "Modified"}}
			if probe {
				columns = append(columns, column{title: "Duration", right: true}, column{title: "Resolution"})
			}
			rows := make([][]string, 0, len(listed))
			for i, entry := range listed {
				row := []string{fmt.Sprintf("%d", i+1), entry.Name, entry.Kind, entry.Modified}
				if probe {
					duration := "unusable"
					if entry.Seconds > 0 {
						duration = fmt.Sprintf("%.2fs", entry.Seconds)
					}
					resolution := entry.Resolution
					if resolution == "" {
						resolution = "-"
					}
					row = append(row, duration, resolution)
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(out, renderTable(columns, rows))
			fmt.Fprintf(out, "%d item(s), order %s\n", len(listed), req.Order)
			return nil
		},
	}

	flags.bind(cmd, false)
	cmd.Flags().BoolVar(&probe, "probe", false, "Probe each item with ffprobe for duration and resolution")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the catalog as JSON")
	return cmd
}
