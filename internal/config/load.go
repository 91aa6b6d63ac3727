package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const projectConfigName = "autoreel.toml"

// DefaultConfigPath is $XDG_CONFIG_HOME/autoreel/config.toml, with
// ~/.config standing in when the variable is unset.
func DefaultConfigPath() (string, error) {
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return expandPath(filepath.Join(base, "autoreel", "config.toml"))
	}
	return expandPath("~/.config/autoreel/config.toml")
}

// Load reads the configuration at path, or the first of DefaultConfigPath and
// ./autoreel.toml that exists when path is empty. A missing file yields the
// defaults. It returns the normalized config, the path it settled on, and
// whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		raw, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		dec := toml.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config %s: %s", resolved, strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

// locate picks the config file. An explicit path is used even when absent so
// that `config init` and error messages name it.
func locate(explicit string) (string, bool, error) {
	var candidates []string
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		p, err := expandPath(explicit)
		if err != nil {
			return "", false, err
		}
		candidates = []string{p}
	} else {
		def, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		local, err := filepath.Abs(projectConfigName)
		if err != nil {
			return "", false, err
		}
		candidates = []string{def, local}
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		switch {
		case err == nil && !info.IsDir():
			return c, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}
	return candidates[0], false, nil
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
// Empty input stays empty.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value, "~"))
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return abs, nil
}

// EnsureDirectories creates the output, scratch and log folders. The input
// folder is never created: a missing input folder is an empty catalog.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.ScratchDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath is the run ledger database under the log folder.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// LogFilePath is the JSON log file under the log folder.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "autoreel.log")
}

func defaultScratchDir() string {
	return filepath.Join(os.TempDir(), "autoreel")
}

// CreateSample writes the commented sample configuration to path.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
