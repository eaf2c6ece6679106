// Package envcache is the fast side of the environment variable mirror:
// a Redis adapter storing values under the "env:" namespace. The cache
// is never the source of truth; absence of a key here implies nothing
// about the durable store.
package envcache

import (
	"context"
	"errors"
	"strings"

	"github.com/go-redis/redis/v8"
)

// KeyPrefix namespaces environment variable entries inside Redis to
// avoid collisions with unrelated cache data.
const KeyPrefix = "env:"

// Cache wraps a Redis client for env var access
type Cache struct {
	rdb *redis.Client
}

// New creates a new Cache
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// NamespacedKey prepends the namespace prefix to a logical key
func NamespacedKey(key string) string {
	return KeyPrefix + key
}

// LogicalKey strips the namespace prefix from a cache key
func LogicalKey(nsKey string) string {
	return strings.TrimPrefix(nsKey, KeyPrefix)
}

// Get fetches a value by logical key. The second return value reports a
// cache hit. go-redis returns text values as string already, so no
// binary decode step is needed at this boundary.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, NamespacedKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set writes a value under the namespaced key with no expiry
func (c *Cache) Set(ctx context.Context, key, value string) error {
	return c.rdb.Set(ctx, NamespacedKey(key), value, 0).Err()
}

// Delete removes a logical key and returns the number of keys removed
func (c *Cache) Delete(ctx context.Context, key string) (int64, error) {
	return c.rdb.Del(ctx, NamespacedKey(key)).Result()
}

// Keys lists every namespaced env var key currently cached
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	return c.rdb.Keys(ctx, KeyPrefix+"*").Result()
}

// DeleteMany removes the given namespaced keys and returns the number removed
func (c *Cache) DeleteMany(ctx context.Context, nsKeys []string) (int64, error) {
	if len(nsKeys) == 0 {
		return 0, nil
	}
	return c.rdb.Del(ctx, nsKeys...).Result()
}
