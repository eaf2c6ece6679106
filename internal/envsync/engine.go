// Package envsync coordinates the durable env var store (MySQL) and the
// fast cache (Redis). The consistency model is deliberately best-effort:
// write-through on Set, read-repair on Get, and explicit one-way sync
// operations. No cross-store transaction or per-key locking exists;
// configuration values change rarely and brief staleness is tolerable.
package envsync

import (
	"context"

	"bidtrack/internal/envcache"
	"bidtrack/internal/model"

	"github.com/sirupsen/logrus"
)

// Store is the durable side of the mirror
type Store interface {
	GetValue(key string) (string, bool, error)
	GetAllAsMap() (map[string]string, error)
	Upsert(key, value string) (*model.EnvVar, error)
	BulkUpsert(vars map[string]string) (int, error)
	Delete(key string) (bool, error)
	Count() (int64, error)
}

// Cache is the fast side of the mirror. Keys returns namespaced keys;
// every other method takes logical keys.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) (int64, error)
	Keys(ctx context.Context) ([]string, error)
	DeleteMany(ctx context.Context, nsKeys []string) (int64, error)
}

// Stats reports the two store sizes. The counts are independent and not
// cross-validated; divergence is expected, not an error.
type Stats struct {
	CacheCount int64 `json:"cache_count"`
	StoreCount int64 `json:"store_count"`
}

// Engine implements the synchronization protocol between the two stores
type Engine struct {
	store Store
	cache Cache
	log   *logrus.Entry
}

// New creates a new Engine
func New(store Store, cache Cache, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{store: store, cache: cache, log: log}
}

// LoadStoreToCache scans the durable store fully and writes each entry
// into the cache, overwriting unconditionally (durable store wins).
// Called at startup to warm the cache. Returns the count written.
func (e *Engine) LoadStoreToCache(ctx context.Context) (int, error) {
	vars, err := e.store.GetAllAsMap()
	if err != nil {
		return 0, err
	}

	count := 0
	for key, value := range vars {
		if err := e.cache.Set(ctx, key, value); err != nil {
			return count, err
		}
		count++
	}

	e.log.Infof("✓ Loaded %d env vars from store into cache", count)
	return count, nil
}

// Get looks up a key cache-first. On a miss it falls back to the durable
// store, repairing the cache with any value found there. The second
// return value reports existence. Read failures propagate unmasked.
func (e *Engine) Get(ctx context.Context, key string) (string, bool, error) {
	value, hit, err := e.cache.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if hit {
		return value, true, nil
	}

	value, found, err := e.store.GetValue(key)
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}

	// Read-repair: populate the cache so the next read is fast
	if err := e.cache.Set(ctx, key, value); err != nil {
		return "", false, err
	}
	return value, true, nil
}

// GetAll returns every env var currently cached. This reflects cache
// state only: durable entries that were never cached and never read do
// not appear. The cache is the serving path.
func (e *Engine) GetAll(ctx context.Context) (map[string]string, error) {
	nsKeys, err := e.cache.Keys(ctx)
	if err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(nsKeys))
	for _, nsKey := range nsKeys {
		key := envcache.LogicalKey(nsKey)
		value, hit, err := e.cache.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if hit {
			vars[key] = value
		}
	}
	return vars, nil
}

// Set writes through: the durable store first (the durability
// guarantee), then the cache. Any failure is logged and reported as
// false; the caller never sees the cause. A durable write failure
// leaves the cache unmodified.
func (e *Engine) Set(ctx context.Context, key, value string) bool {
	if _, err := e.store.Upsert(key, value); err != nil {
		e.log.WithField("key", key).Errorf("env var store write failed: %v", err)
		return false
	}
	if err := e.cache.Set(ctx, key, value); err != nil {
		e.log.WithField("key", key).Errorf("env var cache write failed: %v", err)
		return false
	}
	return true
}

// SetMany applies Set to each entry and returns the number that
// succeeded. Entries already applied are not rolled back on partial
// failure.
func (e *Engine) SetMany(ctx context.Context, vars map[string]string) int {
	count := 0
	for key, value := range vars {
		if e.Set(ctx, key, value) {
			count++
		}
	}
	return count
}

// Delete removes the key from both stores independently and returns
// true if either store had it. A cache-only stale entry therefore still
// reports a successful delete; that OR is long-standing behavior and is
// pinned by tests. Failures are logged and reported as false.
func (e *Engine) Delete(ctx context.Context, key string) bool {
	storeDeleted, err := e.store.Delete(key)
	if err != nil {
		e.log.WithField("key", key).Errorf("env var store delete failed: %v", err)
		return false
	}

	removed, err := e.cache.Delete(ctx, key)
	if err != nil {
		e.log.WithField("key", key).Errorf("env var cache delete failed: %v", err)
		return false
	}

	return storeDeleted || removed > 0
}

// SyncStoreToCache restores the cache from the durable store
func (e *Engine) SyncStoreToCache(ctx context.Context) (int, error) {
	return e.LoadStoreToCache(ctx)
}

// SyncCacheToStore pushes every cached entry into the durable store in
// one bulk upsert and returns the count persisted. Durable-only keys
// are left untouched, not deleted.
func (e *Engine) SyncCacheToStore(ctx context.Context) (int, error) {
	vars, err := e.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return e.store.BulkUpsert(vars)
}

// ClearCache deletes every namespaced env var key from the cache,
// returning the count removed. The durable store is unaffected.
func (e *Engine) ClearCache(ctx context.Context) (int64, error) {
	nsKeys, err := e.cache.Keys(ctx)
	if err != nil {
		return 0, err
	}
	if len(nsKeys) == 0 {
		return 0, nil
	}

	removed, err := e.cache.DeleteMany(ctx, nsKeys)
	if err != nil {
		return 0, err
	}
	e.log.Infof("✓ Cleared %d env vars from cache", removed)
	return removed, nil
}

// Stats returns the independent sizes of both stores
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	nsKeys, err := e.cache.Keys(ctx)
	if err != nil {
		return nil, err
	}
	storeCount, err := e.store.Count()
	if err != nil {
		return nil, err
	}
	return &Stats{
		CacheCount: int64(len(nsKeys)),
		StoreCount: storeCount,
	}, nil
}
