package logs

import (
	"encoding/json"
	"strings"
	"time"

	"autoreel/internal/logging"
)

// Entry is one decoded log record. Lines that are not JSON keep only Raw.
type Entry struct {
	Raw       string
	Time      time.Time
	Level     string
	Message   string
	Component string
	RunID     string
}

// Parse decodes a JSON log line.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return entry
	}
	entry.Level = stringField(record, "level")
	entry.Message = stringField(record, "msg")
	entry.Component = stringField(record, logging.FieldComponent)
	entry.RunID = stringField(record, logging.FieldRunID)
	if ts, err := time.Parse(time.RFC3339, stringField(record, "ts")); err == nil {
		entry.Time = ts
	}
	return entry
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	RunID    string
	MinLevel string
}

// Match reports whether e passes f. Non-JSON lines only pass an empty filter.
func (f Filter) Match(e Entry) bool {
	if f.RunID != "" && !strings.HasPrefix(e.RunID, f.RunID) {
		return false
	}
	if f.MinLevel != "" && levelRank(e.Level) < levelRank(f.MinLevel) {
		return false
	}
	return true
}

func levelRank(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return 0
	case "info":
		return 1
	case "warn", "warning":
		return 2
	case "error":
		return 3
	default:
		return -1
	}
}

func stringField(record map[string]any, key string) string {
	if value, ok := record[key].(string); ok {
		return value
	}
	return ""
}
