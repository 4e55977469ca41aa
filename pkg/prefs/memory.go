package prefs

import (
	"context"
	"sync"
)

// MemStore is an in-process Store. Values are lost on exit.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
	sets   int

	// Err, if set, is returned by every Get and Set.
	Err error
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Get implements Store.
func (s *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return "", false, s.Err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements Store.
func (s *MemStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.values[key] = value
	s.sets++
	return nil
}

// SetCount returns how many successful Set calls were made.
func (s *MemStore) SetCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}

// Close implements Store.
func (s *MemStore) Close() error {
	return nil
}
