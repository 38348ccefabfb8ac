package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStore keeps values in a map. It is the default backend and is also
// used by tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

// NewFromFiles seeds a memory store from <dir>/<key>.json files. Missing
// files are skipped so the usual defaults apply.
func NewFromFiles(dir string) *MemoryStore {
	s := NewMemoryStore()
	for _, key := range []string{KeyTransactions, KeyCategories, KeyTags, KeySettings, KeyInitialized} {
		b, err := os.ReadFile(filepath.Join(dir, key+".json"))
		if err != nil {
			continue
		}
		s.values[key] = b
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
