package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[uuid.UUID]map[string][]byte
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[uuid.UUID]map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[profileID][key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[profileID] == nil {
		s.data[profileID] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[profileID][key] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[profileID], key)
	return nil
}
