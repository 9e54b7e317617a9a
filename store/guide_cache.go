package store

import (
	"context"
)

// GuideCacheRecord is a raw cached provider payload. The payload is the
// opaque record envelope written by internal/cache; the store only persists
// bytes under a namespaced key.
type GuideCacheRecord struct {
	Key       string
	Payload   []byte
	UpdatedTs int64
}

func (s *Store) GetGuideCache(ctx context.Context, key string) (*GuideCacheRecord, error) {
	return s.driver.GetGuideCache(ctx, key)
}

func (s *Store) UpsertGuideCache(ctx context.Context, upsert *GuideCacheRecord) error {
	return s.driver.UpsertGuideCache(ctx, upsert)
}

func (s *Store) DeleteGuideCache(ctx context.Context, key string) error {
	return s.driver.DeleteGuideCache(ctx, key)
}

// DurableCacheBackend adapts the store to the internal/cache Backend
// interface so provider caches persist across restarts.
type DurableCacheBackend struct {
	store *Store
}

// CacheBackend returns a durable cache backend over the guide_cache table.
func (s *Store) CacheBackend() *DurableCacheBackend {
	return &DurableCacheBackend{store: s}
}

func (b *DurableCacheBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	record, err := b.store.GetGuideCache(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, nil
	}
	return record.Payload, true, nil
}

func (b *DurableCacheBackend) Set(ctx context.Context, key string, raw []byte) error {
	return b.store.UpsertGuideCache(ctx, &GuideCacheRecord{Key: key, Payload: raw})
}

func (b *DurableCacheBackend) Delete(ctx context.Context, key string) error {
	return b.store.DeleteGuideCache(ctx, key)
}
