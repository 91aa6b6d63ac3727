package main

import (
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"autoreel/internal/logging"
	"autoreel/internal/playlist"
)

// progressReporter renders pipeline progress as a bar on terminals and as
// sampled log lines everywhere else.
type progressReporter struct {
	out      io.Writer
	tty      bool
	logger   *slog.Logger
	throttle *logging.ProgressThrottle

	bar   *progressbar.ProgressBar
	label string
}

var _ playlist.ProgressObserver = (*progressReporter)(nil)

func newProgressReporter(out io.Writer, logger *slog.Logger, quiet bool) *progressReporter {
	return &progressReporter{
		out:      out,
		tty:      !quiet && isTerminal(out),
		logger:   logging.NewComponentLogger(logger, "progress"),
		throttle: logging.NewProgressThrottle(10),
	}
}

func (p *progressReporter) OnProgress(done, total int, label string) {
	if !p.tty {
		if !p.throttle.Allow(label, done, total) {
			return
		}
		attrs := []logging.Attr{
			logging.String(logging.FieldProgressLabel, label),
			logging.Int("done", done),
			logging.Int("total", total),
		}
		if total > 0 {
			attrs = append(attrs, logging.Float64(logging.FieldProgressPercent, float64(done)/float64(total)*100))
		}
		p.logger.Info(label, logging.Args(attrs...)...)
		return
	}

	if p.bar == nil || label != p.label {
		p.finish()
		p.label = label
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(label),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

// finish clears any bar still on screen.
func (p *progressReporter) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
