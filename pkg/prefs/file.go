package prefs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// entryMeta is persisted next to each value so the directory can be listed
// without reversing the hashed file names.
type entryMeta struct {
	Key     string `json:"key"`
	Updated int64  `json:"updated"` // UnixNano
	Size    int64  `json:"size"`
}

// FileStore keeps each key in two files under Dir: {hash}.pref (value) and
// {hash}.meta (JSON metadata). Writes are atomic via temp-file-then-rename.
type FileStore struct {
	dir string

	mu    sync.RWMutex
	index map[string]string // hash -> key
}

// NewFileStore opens (creating if needed) a file store rooted at dir.
// Existing entries are indexed from their meta files.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("prefs: file store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("prefs: create directory %s: %w", dir, err)
	}

	s := &FileStore{dir: dir, index: make(map[string]string)}
	if err := s.scanDir(); err != nil {
		return nil, fmt.Errorf("prefs: scan directory: %w", err)
	}
	return s, nil
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	h := hashKey(key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.dataPath(h))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set implements Store.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	h := hashKey(key)

	meta := entryMeta{
		Key:     key,
		Updated: time.Now().UnixNano(),
		Size:    int64(len(value)),
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal meta for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := atomicWrite(s.dataPath(h), []byte(value), s.dir); err != nil {
		return fmt.Errorf("write value for %q: %w", key, err)
	}
	if err := atomicWrite(s.metaPath(h), metaBytes, s.dir); err != nil {
		return fmt.Errorf("write meta for %q: %w", key, err)
	}
	s.index[h] = key
	return nil
}

// Keys returns the keys currently stored.
func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.index))
	for _, k := range s.index {
		keys = append(keys, k)
	}
	return keys
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Close implements Store. FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) dataPath(hash string) string {
	return filepath.Join(s.dir, hash+".pref")
}

func (s *FileStore) metaPath(hash string) string {
	return filepath.Join(s.dir, hash+".meta")
}

// scanDir rebuilds the index from meta files. Orphaned or unreadable meta
// files are skipped, not removed.
func (s *FileStore) scanDir() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".meta") {
			continue
		}
		h := strings.TrimSuffix(name, ".meta")
		raw, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var m entryMeta
		if err := json.Unmarshal(raw, &m); err != nil || hashKey(m.Key) != h {
			continue
		}
		if _, err := os.Stat(s.dataPath(h)); err != nil {
			continue
		}
		s.index[h] = m.Key
	}
	return nil
}

// hashKey returns the first 16 hex characters of the SHA-256 of key, a
// filesystem-safe name for any key.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}

// atomicWrite writes data to a temp file in tmpDir and renames it over path.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
