// Package config loads the YAML application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/warp/calendar-engine/calendar"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Timezone is the IANA timezone all date arithmetic runs in
	// (e.g. "America/New_York"). Empty means the process-local zone.
	Timezone string `yaml:"timezone"`

	// Locale is the default locale tag used when requests omit one.
	Locale string `yaml:"locale"`

	// WeekStart forces the first day of the week: "sunday" or
	// "monday". Empty defers to the locale table.
	WeekStart string `yaml:"week_start"`

	// GridCacheSize and HighlightCacheSize bound the two caches.
	// Zero uses the package defaults.
	GridCacheSize      int `yaml:"grid_cache_size"`
	HighlightCacheSize int `yaml:"highlight_cache_size"`

	// Database is the SQLite path for custom preset definitions.
	// ":memory:" keeps them in-process.
	Database string `yaml:"database"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:   "127.0.0.1:8080",
		Locale:   "en-US",
		Database: "presets.db",
	}
}

// Load reads the configuration at path. A missing file yields the
// defaults; a present but malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize fills missing values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Locale == "" {
		c.Locale = "en-US"
	}
	switch c.WeekStart {
	case "", "sunday", "monday":
		// ok
	default:
		// Unknown value; defer to the locale table rather than guess.
		c.WeekStart = ""
	}
	if c.Database == "" {
		c.Database = "presets.db"
	}
}

// ResolveWeekStart returns the effective week start for a locale,
// honoring the config override when set.
func (c *Config) ResolveWeekStart(locale string) int {
	switch c.WeekStart {
	case "sunday":
		return calendar.WeekStartSunday
	case "monday":
		return calendar.WeekStartMonday
	}
	if locale == "" {
		locale = c.Locale
	}
	return calendar.WeekStartForLocale(locale)
}
