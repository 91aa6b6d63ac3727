package services

import "context"

type contextKey int

const (
	runIDKey contextKey = iota
	stageKey
	triggerKey
)

// WithRunID tags ctx with the assembly run identifier.
func WithRunID(ctx context.Context, id string) context.Context { return with(ctx, runIDKey, id) }

// WithStage tags ctx with the pipeline stage (normalize, concat, cleanup...).
func WithStage(ctx context.Context, stage string) context.Context { return with(ctx, stageKey, stage) }

// WithTrigger tags ctx with what started the run: manual or watch.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return with(ctx, triggerKey, trigger)
}

func RunIDFromContext(ctx context.Context) (string, bool)   { return from(ctx, runIDKey) }
func StageFromContext(ctx context.Context) (string, bool)   { return from(ctx, stageKey) }
func TriggerFromContext(ctx context.Context) (string, bool) { return from(ctx, triggerKey) }

// with ignores empty values so callers can pass optional tags unconditionally.
func with(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func from(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}
