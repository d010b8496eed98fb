package testutil

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/roach88/blockart/internal/canon"
)

// ErrOptionExists mirrors the SQLite store's AddOption conflict error.
var ErrOptionExists = errors.New("option already exists")

// MemOptions is an in-memory option store.
//
// Values are compared as canonical JSON, like the SQLite store, so an update
// with an equal value reports no change. Set Err to make every call fail.
type MemOptions struct {
	mu     sync.Mutex
	values map[string]any
	writes int

	Err error
}

// NewMemOptions returns an empty store.
func NewMemOptions() *MemOptions {
	return &MemOptions{values: make(map[string]any)}
}

// GetOption returns the value stored under name.
func (m *MemOptions) GetOption(ctx context.Context, name string) (any, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, false, m.Err
	}
	v, ok := m.values[name]
	return v, ok, nil
}

// UpdateOption stores value under name; false when it was already equal.
func (m *MemOptions) UpdateOption(ctx context.Context, name string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if old, ok := m.values[name]; ok {
		same, err := equal(old, value)
		if err != nil {
			return false, err
		}
		if same {
			return false, nil
		}
	}
	m.values[name] = value
	m.writes++
	return true, nil
}

// AddOption stores value under a new name.
func (m *MemOptions) AddOption(ctx context.Context, name string, value any, autoload bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.values[name]; ok {
		return ErrOptionExists
	}
	m.values[name] = value
	m.writes++
	return nil
}

// DeleteOption removes name, reporting whether it existed.
func (m *MemOptions) DeleteOption(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.values[name]
	delete(m.values, name)
	return ok, nil
}

// Value returns the raw stored value, for assertions.
func (m *MemOptions) Value(name string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[name]
}

// Writes counts the calls that changed the store.
func (m *MemOptions) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func equal(a, b any) (bool, error) {
	ab, err := canon.Marshal(a)
	if err != nil {
		return false, err
	}
	bb, err := canon.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ab, bb), nil
}
