package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process KeyValueStore with no durability. It is used
// in tests and for ephemeral runs. Values are kept JSON-encoded so Get/Set
// round-trips behave identically to the durable store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get decodes the value stored under key into v.
func (s *MemoryStore) Get(key string, v any) error {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode value for key %q: %w", key, err)
	}
	return nil
}

// Set encodes v and stores it under key.
func (s *MemoryStore) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
