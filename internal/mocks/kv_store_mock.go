// Package mocks provides mock implementations of port interfaces for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// MockKeyValueStore implements ports.KeyValueStore in memory with error
// injection and call tracking.
type MockKeyValueStore struct {
	mu   sync.RWMutex
	data map[string]string

	// Call tracking for verification
	GetCalls    []string
	SetCalls    []string
	DeleteCalls []string

	// Error injection for testing error scenarios
	GetError    error
	SetError    error
	DeleteError error
	PingError   error
}

var _ ports.KeyValueStore = (*MockKeyValueStore)(nil)

func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{data: make(map[string]string)}
}

// SeedValue stores a raw value for test setup.
func (m *MockKeyValueStore) SeedValue(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Value returns the raw stored value for assertions.
func (m *MockKeyValueStore) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, key)
	if m.GetError != nil {
		return "", m.GetError
	}
	v, ok := m.data[key]
	if !ok {
		return "", ports.ErrNotFound
	}
	return v, nil
}

func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, key)
	if m.SetError != nil {
		return m.SetError
	}
	m.data[key] = value
	return nil
}

func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, key)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.data, key)
	return nil
}

func (m *MockKeyValueStore) Ping(ctx context.Context) error {
	return m.PingError
}

func (m *MockKeyValueStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]string)
	m.GetCalls = nil
	m.SetCalls = nil
	m.DeleteCalls = nil
	m.GetError = nil
	m.SetError = nil
	m.DeleteError = nil
	m.PingError = nil
}
