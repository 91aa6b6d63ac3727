package config

import _ "embed"

//go:embed sample_config.toml
var sampleConfig string

// Paths contains folder configuration.
type Paths struct {
	InputDir   string `toml:"input_dir"`
	OutputDir  string `toml:"output_dir"`
	ScratchDir string `toml:"scratch_dir"`
	LogDir     string `toml:"log_dir"`
}

// Assembly contains the default parameters of one assembly run.
type Assembly struct {
	Order                string  `toml:"order"`
	Natural              bool    `toml:"natural"`
	TargetMinutes        float64 `toml:"target_minutes"`
	ImageDurationSeconds float64 `toml:"image_duration_seconds"`
	DeleteSources        bool    `toml:"delete_sources"`
}

// Encoding describes the uniform profile every clip is normalized to.
type Encoding struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	FPS         int    `toml:"fps"`
	VideoCodec  string `toml:"video_codec"`
	PixelFormat string `toml:"pixel_format"`
}

// Tools contains external binary locations. Empty values are resolved at runtime.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Watch contains configuration for the folder watcher.
type Watch struct {
	IntervalMS        int    `toml:"interval_ms"`
	FSEvents          bool   `toml:"fs_events"`
	MetricsBind       string `toml:"metrics_bind"`
	StaleScratchHours int    `toml:"stale_scratch_hours"`
}

// Notifications configures ntfy delivery of run outcomes. An empty topic disables it.
type Notifications struct {
	NtfyTopic             string `toml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	NotifyManualRuns      bool   `toml:"notify_manual_runs"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for autoreel.
//
// Configuration sections by subsystem:
//   - Paths: input, output, scratch, and log folders
//   - Assembly: order policy, length policy, image duration, source deletion
//   - Encoding: normalized resolution, frame rate, codec, pixel format
//   - Tools: ffmpeg and ffprobe locations
//   - Watch: polling interval, fs event hints, metrics endpoint
//   - Notifications: ntfy topic for run outcomes
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Assembly      Assembly      `toml:"assembly"`
	Encoding      Encoding      `toml:"encoding"`
	Tools         Tools         `toml:"tools"`
	Watch         Watch         `toml:"watch"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}
