// Package memory is a process-local KV store. Nothing survives a restart.
package memory

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	mu     sync.Mutex
	values map[string][]byte
}

func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// NewFromFiles seeds the store from files under base. seeds maps a key to a
// file name; missing or unreadable files are skipped.
func NewFromFiles(base string, seeds map[string]string) *Store {
	s := New()
	for key, name := range seeds {
		raw, err := os.ReadFile(filepath.Join(base, name))
		if err != nil || len(raw) == 0 {
			continue
		}
		s.values[key] = raw
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Len reports how many keys are stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
