// Package prefs persists the dashboard's display preferences behind a small
// key-value interface so the UI never touches storage directly. Backends:
// FileStore (default), RedisStore and MemStore.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// KeyDarkMode holds the JSON-encoded dark mode boolean.
const KeyDarkMode = "darkMode"

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. found is false, with a nil error, when
	// the key has never been set.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases any resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string // FileStore directory
	RedisURL string // RedisStore connection URL
}

// Open constructs the store named by opts.Backend. An empty backend means
// BackendFile.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		s, err := NewRedisStore(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("prefs: unknown backend %q", opts.Backend)
	}
}

// LoadDarkMode reads the dark mode preference. A missing key yields false.
// A value that is not a JSON boolean also yields false, together with an
// error describing it, so callers can log and carry on.
func LoadDarkMode(ctx context.Context, s Store) (bool, error) {
	raw, found, err := s.Get(ctx, KeyDarkMode)
	if err != nil {
		return false, fmt.Errorf("prefs: read %s: %w", KeyDarkMode, err)
	}
	if !found {
		return false, nil
	}
	var v bool
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false, fmt.Errorf("prefs: decode %s=%q: %w", KeyDarkMode, raw, err)
	}
	return v, nil
}

// SaveDarkMode writes the dark mode preference.
func SaveDarkMode(ctx context.Context, s Store, dark bool) error {
	data, err := json.Marshal(dark)
	if err != nil {
		return err
	}
	if err := s.Set(ctx, KeyDarkMode, string(data)); err != nil {
		return fmt.Errorf("prefs: write %s: %w", KeyDarkMode, err)
	}
	return nil
}
