// Package store defines the key-value slot the note collection is persisted
// into, plus an in-memory implementation.
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("slot not found")

// Slot is a minimal key-value storage. Values are opaque byte blobs.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Memory is a process-local Slot. The zero value is ready to use.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }
