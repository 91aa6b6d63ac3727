package history_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"autoreel/internal/cleanup"
	"autoreel/internal/history"
	"autoreel/internal/testsupport"
)

func TestRecordAndListNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	first := history.Run{
		ID:           "run-1",
		Trigger:      history.TriggerManual,
		Status:       "succeeded",
		StartedAt:    base,
		FinishedAt:   base.Add(90 * time.Second),
		OutputPath:   "/out/combined_20250301_100130.mp4",
		Entries:      3,
		TotalSeconds: 12.5,
		Deleted:      2,
		Failures:     []cleanup.Failure{{Path: "/in/b.jpg", Name: "b.jpg", Reason: "not found"}},
	}
	second := history.Run{
		ID:           "run-2",
		Trigger:      history.TriggerWatch,
		Status:       "failed",
		StartedAt:    base.Add(time.Hour),
		FinishedAt:   base.Add(time.Hour + time.Second),
		ErrorMessage: "external tool error: concat: ffmpeg failed",
	}
	for _, run := range []history.Run{first, second} {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record %s: %v", run.ID, err)
		}
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-2" || runs[1].ID != "run-1" {
		t.Fatalf("unexpected order %+v", runs)
	}
	got := runs[1]
	if got.Duration() != 90*time.Second {
		t.Fatalf("unexpected duration %s", got.Duration())
	}
	if got.OutputPath != first.OutputPath || got.Entries != 3 || got.Deleted != 2 {
		t.Fatalf("unexpected run %+v", got)
	}
	if len(got.Failures) != 1 || got.Failures[0].Reason != "not found" {
		t.Fatalf("unexpected failures %+v", got.Failures)
	}
	if runs[0].ErrorMessage == "" {
		t.Fatal("expected error message on failed run")
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List limit: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "run-2" {
		t.Fatalf("unexpected limited list %+v", limited)
	}
}

func TestRecordRequiresID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	if err := store.Record(context.Background(), history.Run{}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestLastOnEmptyLedger(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	last, err := store.Last(context.Background())
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if last != nil {
		t.Fatalf("expected nil run, got %+v", last)
	}
}

func TestPruneRemovesOldRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()
	now := time.Now().UTC()
	for i, started := range []time.Time{now.Add(-48 * time.Hour), now} {
		run := history.Run{ID: string(rune('a' + i)), Trigger: history.TriggerManual, Status: "succeeded", StartedAt: started, FinishedAt: started}
		if err := store.Record(ctx, run); err != nil {
			t.Fatal(err)
		}
	}
	removed, err := store.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	reopened, err := history.Open(cfg)
	if err != nil {
		if errors.Is(err, history.ErrSchemaMismatch) {
			t.Fatalf("unexpected schema mismatch: %v", err)
		}
		t.Fatalf("reopen: %v", err)
	}
	_ = reopened.Close()
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", cfg.HistoryPath())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	if _, err := history.Open(cfg); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
