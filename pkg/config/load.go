package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// DefaultBaseURL is the hosted lytelode backend.
const DefaultBaseURL = "https://lytelode-1.onrender.com"

const appName = "lytelode"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/lytelode/config.toml
//  2. $XDG_CONFIG_HOME/lytelode/config.yaml
//  3. the same two under ~/.config when XDG_CONFIG_HOME points elsewhere
//
// If no file exists, returns DefaultConfig() with environment overrides.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as TOML. A missing
// file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	cfg, err := LoadFromReader(f, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader reads configuration in the given format from r. Values
// absent from the input keep their defaults; environment overrides are
// applied last.
func LoadFromReader(r io.Reader, format Format) (*Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	stateDir := filepath.Join(xdgStateHome(home), appName)

	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: Duration{15 * time.Second},
		},
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  filepath.Join(stateDir, appName+".log"),
			Timezone: "Africa/Johannesburg",
		},
		Preferences: PreferencesConfig{
			Backend: "file",
			Dir:     filepath.Join(stateDir, "prefs"),
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LYTELODE_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("LYTELODE_API_TIMEOUT"); v != "" {
		if d, err := parseDuration(v); err == nil {
			cfg.API.Timeout = Duration{d}
		}
	}
	if v := os.Getenv("LYTELODE_PREFS_BACKEND"); v != "" {
		cfg.Preferences.Backend = v
	}
	if v := os.Getenv("LYTELODE_REDIS_URL"); v != "" {
		cfg.Preferences.RedisURL = v
	}
	if v := os.Getenv("LYTELODE_TIMEZONE"); v != "" {
		cfg.General.Timezone = v
	}
	if v := os.Getenv("LYTELODE_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	dirs := []string{filepath.Join(xdgConfigHome(home), appName)}

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultDir := filepath.Join(home, ".config", appName)
	if dirs[0] != defaultDir {
		dirs = append(dirs, defaultDir)
	}

	var paths []string
	for _, d := range dirs {
		paths = append(paths, filepath.Join(d, "config.toml"), filepath.Join(d, "config.yaml"))
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
