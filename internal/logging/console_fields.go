package logging

import (
	"log/slog"
	"strings"
)

type infoField struct {
	label string
	value string
}

const maxInfoValueLen = 120

// infoOrder puts the fields people scan for first. Anything else follows in
// record order.
var infoOrder = []string{
	FieldEventType,
	FieldProgressLabel,
	FieldProgressPercent,
	"error",
	FieldErrorHint,
	FieldImpact,
	"output",
	"playlist_entries",
	"playlist_seconds",
	"excluded",
	"deleted",
	"delete_failures",
	"items",
	"order",
	"length",
	"source",
	"reason",
}

var infoLabels = map[string]string{
	FieldEventType:       "Event",
	FieldErrorHint:       "Hint",
	FieldProgressLabel:   "Progress",
	FieldProgressPercent: "Complete",
	"playlist_entries":   "Entries",
	"playlist_seconds":   "Length",
	"delete_failures":    "Not deleted",
}

// debugOnly fields are counted as hidden at INFO and above.
var debugOnly = map[string]bool{
	"args":      true,
	"stderr":    true,
	"stdout":    true,
	"workspace": true,
}

func selectInfoFields(fields []field) ([]infoField, int) {
	if len(fields) == 0 {
		return nil, 0
	}
	rank := make(map[string]int, len(infoOrder))
	for i, key := range infoOrder {
		rank[key] = i
	}
	ordered := make([]field, 0, len(fields))
	var rest []field
	for _, key := range infoOrder {
		for _, f := range fields {
			if f.key == key {
				ordered = append(ordered, f)
				break
			}
		}
	}
	for _, f := range fields {
		if _, ok := rank[f.key]; !ok {
			rest = append(rest, f)
		}
	}
	ordered = append(ordered, rest...)

	shown := make([]infoField, 0, len(ordered))
	hidden := 0
	for _, f := range ordered {
		switch f.key {
		case FieldRunID, FieldStage, FieldTrigger, FieldComponent:
			continue
		}
		if debugOnly[f.key] {
			hidden++
			continue
		}
		value := formatForKey(f.key, f.value)
		if f.key != "error" && len(value) > maxInfoValueLen {
			hidden++
			continue
		}
		shown = append(shown, infoField{label: labelFor(f.key), value: value})
	}
	return shown, hidden
}

func formatForKey(key string, v slog.Value) string {
	switch {
	case v.Kind() == slog.KindDuration:
		return formatDurationHuman(v.Duration())
	case v.Kind() == slog.KindFloat64 && strings.HasSuffix(key, "_seconds"):
		return formatSeconds(v.Float64())
	case v.Kind() == slog.KindFloat64 && strings.HasSuffix(key, "_percent"):
		return formatPercent(v.Float64())
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	return formatValue(v)
}

func labelFor(key string) string {
	if label, ok := infoLabels[key]; ok {
		return label
	}
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, w := range words {
		words[i] = capitalizeASCII(w)
	}
	return strings.Join(words, " ")
}

func capitalizeASCII(value string) string {
	if value == "" {
		return ""
	}
	lower := strings.ToLower(value)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
