package logging

import (
	"log/slog"
	"time"
)

// Attr lets callers build fields without importing log/slog.
type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// Error records err under "error". A nil error is recorded as an empty string.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Any("error", err)
}

// Args converts attrs to the variadic form slog.Logger methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component name. A nil logger yields a
// tagged no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

type warnAdvice struct {
	hint   string
	impact string
}

// warnDefaults gives each known warning event a next step and an impact so
// that every WARN line says what to do about it.
var warnDefaults = map[string]warnAdvice{
	"source_delete_failed":     {"remove the file manually", "source left in the input folder"},
	"workspace_cleanup_failed": {"delete the scratch directory manually", "disk space held until the next stale sweep"},
	"notification_failed":      {"check notifications.ntfy_topic and network access", "run outcome not announced"},
	"metrics_serve_failed":     {"check that watch.metrics_bind is free", "metrics unavailable for this watch session"},
}

var genericAdvice = warnAdvice{hint: "check the log file for details", impact: "run continued"}

// WarnWithContext logs a warning carrying event_type, error_hint, and impact.
// Caller-supplied fields win over the per-event defaults.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	advice, ok := warnDefaults[eventType]
	if !ok {
		advice = genericAdvice
	}
	present := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		present[a.Key] = true
	}
	if !present[FieldEventType] {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !present[FieldErrorHint] {
		attrs = append(attrs, String(FieldErrorHint, advice.hint))
	}
	if !present[FieldImpact] {
		attrs = append(attrs, String(FieldImpact, advice.impact))
	}
	logger.Warn(msg, Args(attrs...)...)
}
