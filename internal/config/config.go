// Package config loads the CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the kb configuration loaded from YAML.
type Config struct {
	// Board is the default board file used when no path argument is
	// given.
	Board string `yaml:"board,omitempty"`

	// Journal is the SQLite move-journal path. Empty disables
	// journaling.
	Journal string `yaml:"journal,omitempty"`

	// Watch configures watch mode.
	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig controls how watch mode reacts to file events.
type WatchConfig struct {
	// Debounce is how long to wait after the last write before
	// re-gathering, e.g. "500ms".
	Debounce string `yaml:"debounce,omitempty"`

	// MaxPassesPerMinute caps gather passes under editor save storms.
	MaxPassesPerMinute int `yaml:"max_passes_per_minute,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Board: "board.md",
		Watch: WatchConfig{
			Debounce:           "500ms",
			MaxPassesPerMinute: 30,
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kb.yaml"
	}
	return filepath.Join(home, ".kb.yaml")
}

// Load reads configuration from a YAML file, filling unset fields from
// Default. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if c.Watch.MaxPassesPerMinute < 0 {
		return fmt.Errorf("watch.max_passes_per_minute cannot be negative")
	}
	return nil
}

// DebounceDuration parses the watch debounce, defaulting to 500ms when
// unset.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 500 * time.Millisecond, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch.debounce %q: %w", c.Watch.Debounce, err)
	}
	return d, nil
}
