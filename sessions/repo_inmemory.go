package sessions

import (
	"context"
	"sync"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore is a process-local Store. It backs the volatile token store and
// can stand in for the durable store in tests or with PROFILE_STORE=memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryStore creates an empty in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		values: make(map[string]string),
	}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *InMemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
