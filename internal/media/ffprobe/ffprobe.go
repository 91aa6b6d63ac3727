package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"autoreel/internal/procexec"
)

// Result is the subset of `ffprobe -show_format -show_streams -of json`
// that autoreel reads.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream is one entry of the streams array.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	FrameRate string `json:"avg_frame_rate"`
}

// Format is the container section.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect runs binary (default "ffprobe") against path and decodes its JSON
// report. A nil runner uses procexec.Default.
func Inspect(ctx context.Context, runner procexec.Runner, binary, path string) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}
	if runner == nil {
		runner = procexec.Default()
	}
	if binary = strings.TrimSpace(binary); binary == "" {
		binary = "ffprobe"
	}
	out, err := runner.Run(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", path)
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	var res Result
	if err := json.Unmarshal(out.Stdout, &res); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return res, nil
}

// Video returns the first video stream.
func (r Result) Video() (Stream, bool) {
	for _, s := range r.Streams {
		if strings.EqualFold(s.CodecType, "video") {
			return s, true
		}
	}
	return Stream{}, false
}

// DurationSeconds prefers the container duration and falls back to the video
// stream's. Unusable values yield 0.
func (r Result) DurationSeconds() float64 {
	if d := usable(parseFloat(r.Format.Duration)); d > 0 {
		return d
	}
	if v, ok := r.Video(); ok {
		return usable(parseFloat(v.Duration))
	}
	return 0
}

// Resolution renders the video stream as WIDTHxHEIGHT, with @FPS appended
// when the frame rate is known.
func (r Result) Resolution() string {
	v, ok := r.Video()
	if !ok || v.Width <= 0 || v.Height <= 0 {
		return ""
	}
	res := strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
	if fps := v.FPS(); fps > 0 {
		res += "@" + strconv.FormatFloat(fps, 'f', -1, 64)
	}
	return res
}

// FPS parses avg_frame_rate ("30000/1001" or "25"), rounded to two decimals.
// Unknown rates yield 0.
func (s Stream) FPS() float64 {
	num, den, found := strings.Cut(strings.TrimSpace(s.FrameRate), "/")
	n := usable(parseFloat(num))
	if !found {
		return math.Round(n*100) / 100
	}
	d := usable(parseFloat(den))
	if n == 0 || d == 0 {
		return 0
	}
	return math.Round(n/d*100) / 100
}

func parseFloat(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func usable(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}
