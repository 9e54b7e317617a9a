package cache

import (
	"context"
	"sync"
)

// Backend is the raw record store underneath a Cache. Implementations return
// explicit errors; the Cache layer maps every error to a miss so the
// degrade-on-failure policy lives in one auditable place.
//
// All provider caches in this repository share the durable sqlite-backed
// implementation (store.CacheBackend). The in-memory backend exists for tests
// and for callers that do not want durability.
type Backend interface {
	// Get returns the raw record for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores raw under key, overwriting any prior record.
	Set(ctx context.Context, key string, raw []byte) error
	// Delete removes the record for key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// MemoryBackend is a volatile, mutex-guarded Backend.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.records[key]
	return raw, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = raw
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

// Size returns the number of stored records.
func (m *MemoryBackend) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

var _ Backend = (*MemoryBackend)(nil)
