package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAssembly()
	c.normalizeEncoding()
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeWatch()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("AUTOREEL_INPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.InputDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("AUTOREEL_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = defaultScratchDir()
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.ScratchDir, err = expandPath(strings.TrimSpace(c.Paths.ScratchDir)); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAssembly() {
	order := strings.ToLower(strings.TrimSpace(c.Assembly.Order))
	order = strings.NewReplacer("-", "_", " ", "_").Replace(order)
	switch order {
	case "":
		order = defaultOrder
	case "date", "newest":
		order = OrderDateNewest
	case "oldest":
		order = OrderDateOldest
	case "shuffle":
		order = OrderRandom
	}
	c.Assembly.Order = order
}

func (c *Config) normalizeEncoding() {
	c.Encoding.VideoCodec = strings.TrimSpace(c.Encoding.VideoCodec)
	if c.Encoding.VideoCodec == "" {
		c.Encoding.VideoCodec = defaultVideoCodec
	}
	c.Encoding.PixelFormat = strings.ToLower(strings.TrimSpace(c.Encoding.PixelFormat))
	if c.Encoding.PixelFormat == "" {
		c.Encoding.PixelFormat = defaultPixelFormat
	}
}

func (c *Config) normalizeTools() error {
	if c.Tools.FFmpeg == "" {
		if value, ok := os.LookupEnv("AUTOREEL_FFMPEG"); ok {
			c.Tools.FFmpeg = value
		}
	}
	if c.Tools.FFprobe == "" {
		if value, ok := os.LookupEnv("AUTOREEL_FFPROBE"); ok {
			c.Tools.FFprobe = value
		}
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobe
	}

	var err error
	// Bare command names stay as-is so PATH lookup still applies.
	if strings.ContainsAny(c.Tools.FFmpeg, `/\~`) {
		if c.Tools.FFmpeg, err = expandPath(c.Tools.FFmpeg); err != nil {
			return fmt.Errorf("tools.ffmpeg: %w", err)
		}
	}
	if strings.ContainsAny(c.Tools.FFprobe, `/\~`) {
		if c.Tools.FFprobe, err = expandPath(c.Tools.FFprobe); err != nil {
			return fmt.Errorf("tools.ffprobe: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeWatch() {
	if c.Watch.IntervalMS == 0 {
		c.Watch.IntervalMS = defaultWatchIntervalMS
	}
	c.Watch.MetricsBind = strings.TrimSpace(c.Watch.MetricsBind)
	if c.Watch.StaleScratchHours < 0 {
		c.Watch.StaleScratchHours = 0
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("AUTOREEL_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNtfyTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
