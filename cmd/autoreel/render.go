package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// tone classifies a status line for its tag and color.
type tone int

const (
	toneInfo tone = iota
	toneGood
	toneWarn
	toneBad
)

const (
	sgrReset = "\x1b[0m"
	sgrRed   = "\x1b[31m"
	sgrGreen = "\x1b[32m"
	sgrAmber = "\x1b[33m"
	sgrCyan  = "\x1b[36m"
)

var toneTags = map[tone]string{
	toneInfo: "info",
	toneGood: "ok",
	toneWarn: "warn",
	toneBad:  "fail",
}

var toneColors = map[tone]string{
	toneInfo: sgrCyan,
	toneGood: sgrGreen,
	toneWarn: sgrAmber,
	toneBad:  sgrRed,
}

// printer renders human output, coloring only when the target is a terminal.
type printer struct {
	color bool
}

func newPrinter(w io.Writer) printer {
	return printer{color: isTerminal(w)}
}

func (p printer) paint(t tone, s string) string {
	if !p.color {
		return s
	}
	return toneColors[t] + s + sgrReset
}

// check renders "  Label ........ ok  detail".
func (p printer) check(label string, t tone, detail string) string {
	const width = 20
	dots := width - len(label)
	if dots < 2 {
		dots = 2
	}
	line := "  " + label + " " + strings.Repeat(".", dots) + " " + p.paint(t, toneTags[t])
	if detail = strings.TrimSpace(detail); detail != "" {
		line += "  " + detail
	}
	return line
}

// heading renders a title underlined to its own width.
func (p printer) heading(title string) []string {
	title = strings.TrimSpace(title)
	return []string{p.paint(toneInfo, title), strings.Repeat("=", len(title))}
}

// column describes one table column.
type column struct {
	title string
	right bool
}

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.title
		configs[i] = table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft}
		if c.right {
			configs[i].Align = text.AlignRight
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(columns))
		for i := range row {
			row[i] = ""
			if i < len(cells) {
				row[i] = cells[i]
			}
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.2fs (%.2f min)", seconds, seconds/60)
}

const clockLayout = "2006-01-02 15:04:05"

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
