package logging

import (
	"context"
	"log/slog"

	"autoreel/internal/services"
)

// ContextFields returns the run id, stage, and trigger carried by ctx.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	var fields []Attr
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, String(FieldRunID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, String(FieldStage, stage))
	}
	if trigger, ok := services.TriggerFromContext(ctx); ok {
		fields = append(fields, String(FieldTrigger, trigger))
	}
	return fields
}

// WithContext tags logger with the fields from ContextFields.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if fields := ContextFields(ctx); len(fields) > 0 {
		return logger.With(Args(fields...)...)
	}
	return logger
}
