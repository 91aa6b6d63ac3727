package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders records for people: a header line naming the
// component and run, then the interesting fields indented underneath. Debug
// records list every field verbatim.
type consoleHandler struct {
	shared *consoleState
	level  *slog.LevelVar
	source bool
	preset []field
	groups []string
}

// consoleState is shared by every clone so output stays serialized and the
// repeated-field memory spans component loggers.
type consoleState struct {
	mu   sync.Mutex
	out  io.Writer
	last map[string]map[string]string
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{
		shared: &consoleState{out: w, last: make(map[string]map[string]string)},
		level:  lvl,
		source: addSource,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = append(append([]field(nil), h.preset...), flatten(h.groups, attrs)...)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := append([]field(nil), h.preset...)
	record.Attrs(func(a slog.Attr) bool {
		fields = append(fields, flatten(h.groups, []slog.Attr{a})...)
		return true
	})
	fields = lastWins(fields)

	head := header{
		ts:      record.Time,
		level:   record.Level,
		message: strings.TrimSpace(record.Message),
	}
	body := fields[:0:0]
	for _, f := range fields {
		switch f.key {
		case FieldComponent:
			head.component = attrString(f.value)
			continue
		case FieldRunID:
			head.runID = attrString(f.value)
		case FieldStage:
			head.stage = attrString(f.value)
		case FieldTrigger:
			head.trigger = attrString(f.value)
		}
		body = append(body, f)
	}
	if h.source {
		head.source = record.Source()
	}

	var b strings.Builder
	head.write(&b)

	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	if record.Level < slog.LevelInfo {
		for _, f := range fields {
			b.WriteString("    ")
			b.WriteString(f.key)
			b.WriteString(": ")
			b.WriteString(formatValue(f.value))
			b.WriteByte('\n')
		}
	} else {
		shown, hidden := selectInfoFields(body)
		shown = h.shared.dropRepeats(head.memoryKey(), shown, record.Level)
		for _, f := range shown {
			b.WriteString("    - ")
			b.WriteString(f.label)
			b.WriteString(": ")
			b.WriteString(f.value)
			b.WriteByte('\n')
		}
		if hidden > 0 {
			b.WriteString("    + ")
			b.WriteString(strconv.Itoa(hidden))
			if hidden == 1 {
				b.WriteString(" more field hidden\n")
			} else {
				b.WriteString(" more fields hidden\n")
			}
		}
	}
	_, err := io.WriteString(h.shared.out, b.String())
	return err
}

// dropRepeats hides INFO fields whose value has not changed since the last
// record for the same run. Warnings and errors always show everything.
func (s *consoleState) dropRepeats(key string, fields []infoField, level slog.Level) []infoField {
	if key == "" {
		return fields
	}
	seen, ok := s.last[key]
	if !ok {
		seen = make(map[string]string)
		s.last[key] = seen
	}
	if level > slog.LevelInfo {
		for _, f := range fields {
			seen[f.label] = f.value
		}
		return fields
	}
	kept := fields[:0:0]
	for _, f := range fields {
		if prev, ok := seen[f.label]; ok && prev == f.value {
			continue
		}
		seen[f.label] = f.value
		kept = append(kept, f)
	}
	return kept
}

type header struct {
	ts        time.Time
	level     slog.Level
	component string
	trigger   string
	runID     string
	stage     string
	message   string
	source    *slog.Source
}

func (h header) memoryKey() string {
	if h.runID != "" {
		return "run:" + h.runID
	}
	return h.component
}

// write renders "2006-01-02 15:04:05 INFO [assembly] Watch · Run 1a2b3c4d (concat) - msg".
func (h header) write(b *strings.Builder) {
	ts := h.ts
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(formatTimestamp(ts))
	b.WriteByte(' ')
	b.WriteString(levelLabel(h.level))
	if h.component != "" {
		b.WriteString(" [" + h.component + "]")
	}
	if subject := h.subject(); subject != "" {
		b.WriteString(" " + subject)
	}
	message := h.message
	if message == "" {
		message = "(no message)"
	}
	b.WriteString(" - " + message)
	if h.source != nil && h.source.File != "" {
		b.WriteString(" [" + filepath.Base(h.source.File) + ":" + strconv.Itoa(h.source.Line) + "]")
	}
	b.WriteByte('\n')
}

func (h header) subject() string {
	var parts []string
	if t := strings.TrimSpace(h.trigger); t != "" {
		parts = append(parts, capitalizeASCII(t))
	}
	run := strings.TrimSpace(h.runID)
	if len(run) > 8 {
		run = run[:8]
	}
	stage := strings.TrimSpace(h.stage)
	switch {
	case run != "" && stage != "":
		parts = append(parts, "Run "+run+" ("+stage+")")
	case run != "":
		parts = append(parts, "Run "+run)
	case stage != "":
		parts = append(parts, stage)
	}
	return strings.Join(parts, " · ")
}

// flatten expands groups into dotted keys under the given prefix.
func flatten(prefix []string, attrs []slog.Attr) []field {
	var out []field
	for _, a := range attrs {
		if a.Equal(slog.Attr{}) {
			continue
		}
		v := a.Value.Resolve()
		if v.Kind() == slog.KindGroup {
			next := prefix
			if a.Key != "" {
				next = append(append([]string(nil), prefix...), a.Key)
			}
			out = append(out, flatten(next, v.Group())...)
			continue
		}
		key := a.Key
		if len(prefix) > 0 {
			key = strings.Join(append(append([]string(nil), prefix...), key), ".")
		}
		if key == "" {
			continue
		}
		out = append(out, field{key: key, value: v})
	}
	return out
}

// lastWins keeps the first position of each key with its latest value.
func lastWins(fields []field) []field {
	index := make(map[string]int, len(fields))
	out := make([]field, 0, len(fields))
	for _, f := range fields {
		if i, ok := index[f.key]; ok {
			out[i].value = f.value
			continue
		}
		index[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
