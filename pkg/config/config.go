// Package config provides TOML and YAML configuration for lytelode.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // display zone must resolve on hosts without zoneinfo
)

// Config is the complete lytelode configuration.
type Config struct {
	API         APIConfig         `toml:"api" yaml:"api"`
	General     GeneralConfig     `toml:"general" yaml:"general"`
	Preferences PreferencesConfig `toml:"preferences" yaml:"preferences"`
	Theme       ThemeConfig       `toml:"theme" yaml:"theme"`
}

// APIConfig locates the loadshedding backend.
type APIConfig struct {
	// BaseURL is prepended to the /api/... paths.
	BaseURL string `toml:"base_url" yaml:"base_url"`

	// Timeout bounds a single request. "0s" disables the client timeout.
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// GeneralConfig holds logging and display settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`

	// Timezone is the IANA zone used to display times.
	Timezone string `toml:"timezone" yaml:"timezone"`
}

// PreferencesConfig selects where the dark mode preference is kept.
type PreferencesConfig struct {
	Backend  string `toml:"backend" yaml:"backend"` // file, redis or memory
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
}

// ThemeConfig optionally replaces the built-in palettes with TOML files.
type ThemeConfig struct {
	LightFile string `toml:"light_file" yaml:"light_file"`
	DarkFile  string `toml:"dark_file" yaml:"dark_file"`
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url %q: must be an absolute http(s) URL", c.API.BaseURL)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if _, err := time.LoadLocation(c.General.Timezone); err != nil {
		return fmt.Errorf("general.timezone %q: %w", c.General.Timezone, err)
	}

	switch strings.ToLower(c.Preferences.Backend) {
	case "file":
		if c.Preferences.Dir == "" {
			return fmt.Errorf("preferences.dir is required for the file backend")
		}
	case "redis":
		if c.Preferences.RedisURL == "" {
			return fmt.Errorf("preferences.redis_url is required for the redis backend")
		}
	case "memory":
	default:
		return fmt.Errorf("preferences.backend %q: expected file, redis or memory", c.Preferences.Backend)
	}
	return nil
}

// SlogLevel maps General.LogLevel onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.General.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("general.log_level %q: expected debug, info, warn or error", c.General.LogLevel)
	}
}

// Location returns the display time zone, falling back to UTC if it cannot
// be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
