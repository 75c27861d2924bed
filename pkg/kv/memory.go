package kv

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory store. Values are lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrStoreClosed{}
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}
	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}
	delete(m.values, key)
	return nil
}

// Close shuts down the store and drops its contents.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.values = nil
	return nil
}

// Len returns the number of keys in the store.
// This is for monitoring/testing purposes.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
