package logging

import (
	"context"
	"log/slog"
)

// sinkHandler sends each record to the terminal handler and the log file
// handler, each filtering by its own level.
type sinkHandler struct {
	terminal slog.Handler
	file     slog.Handler
}

func newSinkHandler(terminal, file slog.Handler) slog.Handler {
	switch {
	case terminal == nil && file == nil:
		return slog.DiscardHandler
	case file == nil:
		return terminal
	case terminal == nil:
		return file
	}
	return &sinkHandler{terminal: terminal, file: file}
}

func (h *sinkHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.terminal.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *sinkHandler) Handle(ctx context.Context, record slog.Record) error {
	var termErr error
	if h.terminal.Enabled(ctx, record.Level) {
		termErr = h.terminal.Handle(ctx, record.Clone())
	}
	if h.file.Enabled(ctx, record.Level) {
		if err := h.file.Handle(ctx, record); err != nil {
			return err
		}
	}
	return termErr
}

func (h *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sinkHandler{terminal: h.terminal.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *sinkHandler) WithGroup(name string) slog.Handler {
	return &sinkHandler{terminal: h.terminal.WithGroup(name), file: h.file.WithGroup(name)}
}
