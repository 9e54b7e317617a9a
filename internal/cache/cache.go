// Package cache provides a time-bounded memoizing cache shared by the guide
// data providers. A Cache serves values written within its TTL window and
// treats everything else as a miss; it never surfaces backend failures to
// callers because caching here is an optimization, not a source of truth.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// recordVersion guards against silent misreads after a value-shape change.
// Records written with a different version are discarded as a miss.
const recordVersion = 1

// record is the persisted envelope for a cached value.
type record struct {
	Version   int             `json:"v"`
	Value     json.RawMessage `json:"value,omitempty"`
	Empty     bool            `json:"empty,omitempty"`
	Timestamp int64           `json:"ts"` // epoch millis at write time
}

// State describes the outcome of a cache lookup.
type State int

const (
	// Miss means the key was never written, or the record is stale,
	// corrupt, or unreadable.
	Miss State = iota
	// Hit means a fresh value was found.
	Hit
	// HitEmpty means a confirmed empty result was cached for the key.
	// It is distinct from Miss: the upstream was queried and had nothing.
	HitEmpty
)

// Result is the tri-state outcome of Cache.Get.
type Result[V any] struct {
	State State
	Value V
}

// Cache maps namespaced string keys to values with a fixed TTL.
// All backend failures degrade to a miss (reads) or a no-op (writes).
type Cache[V any] struct {
	backend   Backend
	namespace string
	ttl       time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a cache over the given backend. Keys are stored under
// "<namespace>:" so independent caches can share one backend.
func New[V any](backend Backend, namespace string, ttl time.Duration) *Cache[V] {
	return NewWithClock[V](backend, namespace, ttl, time.Now)
}

// NewWithClock is New with an injected time source, for tests.
func NewWithClock[V any](backend Backend, namespace string, ttl time.Duration, now func() time.Time) *Cache[V] {
	return &Cache[V]{
		backend:   backend,
		namespace: namespace,
		ttl:       ttl,
		now:       now,
	}
}

// TTL returns the freshness window of this cache.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[V]) storageKey(key string) string {
	return c.namespace + ":" + key
}

// Get looks up key. Stale, corrupt, or version-mismatched records are
// deleted and reported as Miss.
func (c *Cache[V]) Get(ctx context.Context, key string) Result[V] {
	raw, found, err := c.backend.Get(ctx, c.storageKey(key))
	if err != nil {
		slog.Debug("cache read failed, treating as miss", "namespace", c.namespace, "key", key, "error", err)
		return Result[V]{State: Miss}
	}
	if !found {
		return Result[V]{State: Miss}
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Version != recordVersion {
		// Drop the bad record so we do not re-parse it on every lookup.
		c.remove(ctx, key)
		return Result[V]{State: Miss}
	}

	storedAt := time.UnixMilli(rec.Timestamp)
	if c.now().Sub(storedAt) >= c.ttl {
		c.remove(ctx, key)
		return Result[V]{State: Miss}
	}

	if rec.Empty {
		return Result[V]{State: HitEmpty}
	}

	var value V
	if err := json.Unmarshal(rec.Value, &value); err != nil {
		c.remove(ctx, key)
		return Result[V]{State: Miss}
	}
	return Result[V]{State: Hit, Value: value}
}

// Set writes value for key, unconditionally overwriting any prior record.
// Write failures are logged and swallowed: the worst case is a miss on the
// next lookup.
func (c *Cache[V]) Set(ctx context.Context, key string, value V) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache value not serializable", "namespace", c.namespace, "key", key, "error", err)
		return
	}
	c.write(ctx, key, record{Version: recordVersion, Value: raw, Timestamp: c.now().UnixMilli()})
}

// SetEmpty records a confirmed empty result for key. A subsequent Get within
// the TTL returns HitEmpty rather than Miss, so callers can distinguish
// "queried and found nothing" from "never queried".
func (c *Cache[V]) SetEmpty(ctx context.Context, key string) {
	c.write(ctx, key, record{Version: recordVersion, Empty: true, Timestamp: c.now().UnixMilli()})
}

func (c *Cache[V]) write(ctx context.Context, key string, rec record) {
	raw, err := json.Marshal(rec)
	if err != nil {
		slog.Warn("cache record marshal failed", "namespace", c.namespace, "key", key, "error", err)
		return
	}
	if err := c.backend.Set(ctx, c.storageKey(key), raw); err != nil {
		slog.Debug("cache write failed, entry skipped", "namespace", c.namespace, "key", key, "error", err)
	}
}

func (c *Cache[V]) remove(ctx context.Context, key string) {
	if err := c.backend.Delete(ctx, c.storageKey(key)); err != nil {
		slog.Debug("cache delete failed", "namespace", c.namespace, "key", key, "error", err)
	}
}
