// Package testsupport holds fixtures shared by package tests: configs rooted
// in temp directories, placeholder media files and a scripted tool runner.
package testsupport

import (
	"path/filepath"
	"testing"

	"autoreel/internal/config"
)

// ConfigOption adjusts the config built by NewConfig.
type ConfigOption func(*config.Config)

// NewConfig returns the default config with every directory moved under a
// fresh temp dir and bare tool names, so tests never touch the real home.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(root, "input")
	cfg.Paths.OutputDir = filepath.Join(root, "output")
	cfg.Paths.ScratchDir = filepath.Join(root, "scratch")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Tools.FFmpeg = "ffmpeg"
	cfg.Tools.FFprobe = "ffprobe"
	cfg.Notifications.NtfyTopic = ""

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithNatural selects natural length mode.
func WithNatural() ConfigOption {
	return func(c *config.Config) { c.Assembly.Natural = true }
}

// WithTargetMinutes selects fixed-target mode.
func WithTargetMinutes(minutes float64) ConfigOption {
	return func(c *config.Config) {
		c.Assembly.Natural = false
		c.Assembly.TargetMinutes = minutes
	}
}

// WithImageDuration sets how long each still is shown.
func WithImageDuration(seconds float64) ConfigOption {
	return func(c *config.Config) { c.Assembly.ImageDurationSeconds = seconds }
}
