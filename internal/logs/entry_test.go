package logs_test

import (
	"testing"

	"autoreel/internal/logs"
)

func TestParseAndFilter(t *testing.T) {
	line := `{"ts":"2026-01-02T03:04:05Z","level":"warn","msg":"source not deleted","component":"cleanup","run_id":"abc123"}`
	entry := logs.Parse(line)
	if entry.Level != "warn" || entry.Message != "source not deleted" || entry.RunID != "abc123" || entry.Component != "cleanup" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Time.IsZero() {
		t.Fatal("expected timestamp to parse")
	}

	tests := []struct {
		name   string
		filter logs.Filter
		want   bool
	}{
		{"empty", logs.Filter{}, true},
		{"run prefix", logs.Filter{RunID: "abc"}, true},
		{"other run", logs.Filter{RunID: "zzz"}, false},
		{"min info", logs.Filter{MinLevel: "info"}, true},
		{"min error", logs.Filter{MinLevel: "error"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Match(entry); got != tc.want {
				t.Fatalf("Match = %v, want %v", got, tc.want)
			}
		})
	}

	plain := logs.Parse("not json")
	if plain.Raw != "not json" || plain.Level != "" {
		t.Fatalf("unexpected plain entry %+v", plain)
	}
	if (logs.Filter{MinLevel: "debug"}).Match(plain) {
		t.Fatal("non-JSON line should not pass a level filter")
	}
}
