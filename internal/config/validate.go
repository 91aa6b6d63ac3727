package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAssembly(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("paths.input_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateAssembly() error {
	switch c.Assembly.Order {
	case OrderName, OrderDateNewest, OrderDateOldest, OrderRandom:
	default:
		return fmt.Errorf("assembly.order %q is not one of %s, %s, %s, %s",
			c.Assembly.Order, OrderName, OrderDateNewest, OrderDateOldest, OrderRandom)
	}
	if c.Assembly.ImageDurationSeconds <= 0 {
		return errors.New("assembly.image_duration_seconds must be positive")
	}
	if !c.Assembly.Natural && c.Assembly.TargetMinutes <= 0 {
		return errors.New("assembly.target_minutes must be positive unless assembly.natural is true")
	}
	if !c.Assembly.Natural && c.Assembly.TargetMinutes > maxTargetMinutes {
		return fmt.Errorf("assembly.target_minutes must be at most %d", maxTargetMinutes)
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if err := ensurePositiveMap(map[string]int{
		"encoding.width":  c.Encoding.Width,
		"encoding.height": c.Encoding.Height,
		"encoding.fps":    c.Encoding.FPS,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.IntervalMS < minWatchIntervalMS {
		return fmt.Errorf("watch.interval_ms must be at least %d", minWatchIntervalMS)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return fmt.Errorf("notifications.ntfy_topic %q must be a full http(s) URL", topic)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
