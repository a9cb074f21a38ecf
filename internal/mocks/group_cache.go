package mocks

import (
	"context"
	"encoding/json"
	"sync"
)

// MockGroupCache keeps JSON values in a map and counts hits.
type MockGroupCache struct {
	mu     sync.Mutex
	values map[string][]byte
	Hits   int
	Err    error
}

func NewMockGroupCache() *MockGroupCache {
	return &MockGroupCache{values: make(map[string][]byte)}
}

func (m *MockGroupCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return false, m.Err
	}
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	m.Hits++
	return true, json.Unmarshal(raw, dst)
}

func (m *MockGroupCache) Set(ctx context.Context, key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *MockGroupCache) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}
