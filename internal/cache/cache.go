package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Backend is the minimal contract the cache needs from a store. Get
// reports a miss with ok=false rather than an error.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Cache is an advisory read-through cache. Reads that miss, fail, or
// deserialize badly always fall back to the source of truth; the cache is
// never the sole holder of a value.
type Cache struct {
	backend Backend
	logger  *zap.Logger
}

// New builds a cache over the given backend.
func New(backend Backend, logger *zap.Logger) *Cache {
	return &Cache{backend: backend, logger: logger}
}

// GetOrCompute returns the cached value for key, or invokes compute and
// stores the result with an absolute TTL. A corrupt cached entry counts as
// a miss and is recomputed. Backend failures are logged, never surfaced.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var zero T

	data, ok, err := c.backend.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	case ok:
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	}

	value, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	if encoded, err := json.Marshal(value); err == nil {
		if err := c.backend.Set(ctx, key, encoded, ttl); err != nil {
			c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return value, nil
}

// Invalidate removes the given keys. Called synchronously after any write
// that changes the underlying data, before the write reports success.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.backend.Del(ctx, keys...); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
