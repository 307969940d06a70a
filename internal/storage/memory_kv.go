package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryKV is a map-backed KV used for tests and ephemeral runs. Contents
// do not survive the process.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
	closed  bool
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]json.RawMessage)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	value, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	out := make(json.RawMessage, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	m.entries[key] = stored
	return nil
}

func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.entries, key)
	return nil
}

func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
