package ffprobe

import (
	"context"
	"errors"
	"testing"

	"autoreel/internal/catalog"
	"autoreel/internal/procexec"
)

func stubRunner(stdout string, err error) procexec.Runner {
	return procexec.RunnerFunc(func(context.Context, string, ...string) (procexec.Result, error) {
		return procexec.Result{Stdout: []byte(stdout)}, err
	})
}

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Width: 1920, Height: 1080, FrameRate: "30000/1001"},
			{CodecType: "audio"},
		},
		Format: Format{Duration: "123.45"},
	}
	if got := result.Resolution(); got != "1920x1080@29.97" {
		t.Fatalf("unexpected resolution %q", got)
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestDurationFallsBackToVideoStream(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", Duration: "7.5"}},
		Format:  Format{Duration: "N/A"},
	}
	if got := result.DurationSeconds(); got != 7.5 {
		t.Fatalf("DurationSeconds = %v, want 7.5", got)
	}
}

func TestStreamFPS(t *testing.T) {
	cases := map[string]float64{
		"25":         25,
		"25/1":       25,
		"30000/1001": 29.97,
		"0/0":        0,
		"":           0,
		"abc":        0,
	}
	for rate, want := range cases {
		if got := (Stream{FrameRate: rate}).FPS(); got != want {
			t.Errorf("FPS(%q) = %v, want %v", rate, got, want)
		}
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad"}}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.Resolution() != "" {
		t.Fatalf("expected empty resolution, got %q", result.Resolution())
	}
}

func TestInspectDecodesJSON(t *testing.T) {
	payload := `{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","width":1280,"height":720}],"format":{"duration":"4.2"}}`
	var gotArgs []string
	runner := procexec.RunnerFunc(func(_ context.Context, _ string, args ...string) (procexec.Result, error) {
		gotArgs = args
		return procexec.Result{Stdout: []byte(payload)}, nil
	})
	result, err := Inspect(context.Background(), runner, "", "/media/a.mp4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if gotArgs[len(gotArgs)-1] != "/media/a.mp4" {
		t.Fatalf("expected path as last argument, got %v", gotArgs)
	}
	if result.DurationSeconds() != 4.2 || result.Resolution() != "1280x720" {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := Inspect(context.Background(), runner, "", " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestDurationArgs(t *testing.T) {
	args := DurationArgs("/clips/a.mp4")
	want := []string{"-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", "/clips/a.mp4"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestDurationParsesStdout(t *testing.T) {
	p := NewProber("ffprobe", WithRunner(stubRunner("3.016000\n", nil)))
	if got := p.Duration(context.Background(), "a.mp4"); got != 3.016 {
		t.Fatalf("Duration = %v, want 3.016", got)
	}
}

func TestDurationReturnsZeroOnFailure(t *testing.T) {
	cases := map[string]procexec.Runner{
		"exit error":  stubRunner("", &procexec.ExitError{Name: "ffprobe", Code: 1}),
		"start error": stubRunner("", errors.New("exec: not found")),
		"garbage":     stubRunner("N/A\n", nil),
		"empty":       stubRunner("", nil),
		"negative":    stubRunner("-1", nil),
	}
	for name, runner := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewProber("ffprobe", WithRunner(runner))
			if got := p.Duration(context.Background(), "broken.mp4"); got != 0 {
				t.Fatalf("Duration = %v, want 0", got)
			}
		})
	}
}

func TestItemDurationUsesImageSecondsForStills(t *testing.T) {
	calls := 0
	runner := procexec.RunnerFunc(func(context.Context, string, ...string) (procexec.Result, error) {
		calls++
		return procexec.Result{Stdout: []byte("3.0")}, nil
	})
	p := NewProber("ffprobe", WithRunner(runner))
	items := []catalog.Item{
		{Path: "a.jpg", Kind: catalog.KindImage},
		{Path: "b.mp4", Kind: catalog.KindVideo},
	}
	if got := p.Estimate(context.Background(), items, 2.0); got != 5.0 {
		t.Fatalf("Estimate = %v, want 5.0", got)
	}
	if calls != 1 {
		t.Fatalf("expected only the video to be probed, got %d calls", calls)
	}
}
