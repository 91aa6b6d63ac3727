package concat_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"autoreel/internal/concat"
	"autoreel/internal/playlist"
	"autoreel/internal/services"
	"autoreel/internal/testsupport"
)

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func samplePlaylist() playlist.Playlist {
	return playlist.Playlist{Entries: []playlist.Entry{
		{Path: "/scratch/a_img.mp4", DurationSeconds: 2},
		{Path: "/scratch/b_norm.mp4", DurationSeconds: 3},
		{Path: "/scratch/a_img.mp4", DurationSeconds: 2},
	}}
}

func TestWriteDescriptorOneLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	if err := concat.WriteDescriptor(&buf, samplePlaylist()); err != nil {
		t.Fatalf("WriteDescriptor: %v", err)
	}
	want := "file '/scratch/a_img.mp4'\nfile '/scratch/b_norm.mp4'\nfile '/scratch/a_img.mp4'\n"
	if buf.String() != want {
		t.Fatalf("descriptor =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestDescriptorLineNormalizesSeparatorsAndQuotes(t *testing.T) {
	if got := concat.DescriptorLine(`C:\clips\a_norm.mp4`); got != "file 'C:/clips/a_norm.mp4'" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := concat.DescriptorLine("/tmp/it's.mp4"); got != `file '/tmp/it'\''s.mp4'` {
		t.Fatalf("unexpected quoted line %q", got)
	}
}

func TestAssembleWritesArtifacts(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "output")
	runner := testsupport.NewFakeRunner(nil)
	engine := concat.NewEngine("ffmpeg", concat.WithRunner(runner), concat.WithClock(func() time.Time { return fixedTime }))

	result, err := engine.Assemble(context.Background(), samplePlaylist(), out)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if result.VideoPath != filepath.Join(out, "combined_20250314_092653.mp4") {
		t.Fatalf("unexpected video path %q", result.VideoPath)
	}
	if result.DescriptorPath != filepath.Join(out, "list_20250314_092653.txt") {
		t.Fatalf("unexpected descriptor path %q", result.DescriptorPath)
	}
	data, err := os.ReadFile(result.DescriptorPath)
	if err != nil {
		t.Fatalf("read descriptor: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 3 {
		t.Fatalf("expected 3 descriptor lines, got %d", lines)
	}

	calls := runner.CallsTo("ffmpeg")
	if len(calls) != 1 {
		t.Fatalf("expected one ffmpeg call, got %d", len(calls))
	}
	joined := strings.Join(calls[0].Args, " ")
	want := "-y -f concat -safe 0 -i " + result.DescriptorPath + " -c:v libx264 -pix_fmt yuv420p -r 30 -movflags +faststart " + result.VideoPath
	if joined != want {
		t.Fatalf("args =\n%s\nwant\n%s", joined, want)
	}
}

func TestAssembleNeverOverwritesEarlierRun(t *testing.T) {
	out := t.TempDir()
	runner := testsupport.NewFakeRunner(nil)
	engine := concat.NewEngine("ffmpeg", concat.WithRunner(runner), concat.WithClock(func() time.Time { return fixedTime }))

	first, err := engine.Assemble(context.Background(), samplePlaylist(), out)
	if err != nil {
		t.Fatalf("first Assemble: %v", err)
	}
	second, err := engine.Assemble(context.Background(), samplePlaylist(), out)
	if err != nil {
		t.Fatalf("second Assemble: %v", err)
	}
	if first.VideoPath == second.VideoPath || first.DescriptorPath == second.DescriptorPath {
		t.Fatalf("expected distinct artifacts, got %+v and %+v", first, second)
	}
	if second.Stamp != "20250314_092653_2" {
		t.Fatalf("unexpected second stamp %q", second.Stamp)
	}
}

func TestAssembleRejectsEmptyPlaylist(t *testing.T) {
	runner := testsupport.NewFakeRunner(nil)
	engine := concat.NewEngine("ffmpeg", concat.WithRunner(runner))
	_, err := engine.Assemble(context.Background(), playlist.Playlist{}, t.TempDir())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(runner.Calls()) != 0 {
		t.Fatal("ffmpeg should not run for an empty playlist")
	}
}

func TestAssembleFailureRemovesPartialOutput(t *testing.T) {
	out := t.TempDir()
	runner := testsupport.NewFakeRunner(nil)
	runner.FailOn = "list_"
	engine := concat.NewEngine("ffmpeg", concat.WithRunner(runner), concat.WithClock(func() time.Time { return fixedTime }))

	partial := filepath.Join(out, "combined_20250314_092653.mp4")
	_, err := engine.Assemble(context.Background(), samplePlaylist(), out)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if _, statErr := os.Stat(partial); !os.IsNotExist(statErr) {
		t.Fatalf("expected no combined output after failure, got %v", statErr)
	}
	if _, statErr := os.Stat(filepath.Join(out, "list_20250314_092653.txt")); statErr != nil {
		t.Fatalf("descriptor should be kept: %v", statErr)
	}
}
