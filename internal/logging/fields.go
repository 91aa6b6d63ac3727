package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for assembly run identifiers.
	FieldRunID = "run_id"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldTrigger records whether a run was started manually or by the watcher.
	FieldTrigger = "trigger"
	// FieldEventType classifies a log line for filtering (e.g. run_complete, clip_excluded).
	FieldEventType = "event_type"
	// FieldErrorHint carries the next step an operator should take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldProgressLabel is the label of the current progress step.
	FieldProgressLabel = "progress_label"
	// FieldProgressPercent is the completion percentage of the current run.
	FieldProgressPercent = "progress_percent"
)
