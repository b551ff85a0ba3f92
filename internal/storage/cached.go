package storage

import (
	"context"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/log"
)

// CachedKV is a read-through, write-through cache in front of another KV.
// Only present keys are cached. Values are copied in both directions.
type CachedKV struct {
	next   KV
	cache  *cache.LRUCache[[]byte]
	logger *log.Logger
}

var _ KV = (*CachedKV)(nil)

func NewCachedKV(next KV, size int, ttl time.Duration, logger *log.Logger) *CachedKV {
	if logger == nil {
		logger = log.Discard()
	}
	return &CachedKV{
		next:   next,
		cache:  cache.NewLRUCache[[]byte](size, ttl),
		logger: logger.WithComponent(log.ComponentCache),
	}
}

func (c *CachedKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := c.cache.Get(key); ok {
		c.logger.DebugContext(ctx, "Cache hit", log.FieldKey, key)
		return clone(v), true, nil
	}
	v, ok, err := c.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	c.cache.Set(key, clone(v))
	return v, true, nil
}

func (c *CachedKV) Set(ctx context.Context, key string, value []byte) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Delete(key)
		return err
	}
	if n := c.cache.CleanExpired(); n > 0 {
		c.logger.DebugContext(ctx, "Dropped expired entries", log.FieldCount, n)
	}
	c.cache.Set(key, clone(value))
	return nil
}

func (c *CachedKV) Remove(ctx context.Context, keys ...string) error {
	err := c.next.Remove(ctx, keys...)
	for _, k := range keys {
		c.cache.Delete(k)
	}
	return err
}

func (c *CachedKV) Close() error {
	c.cache.Purge()
	return c.next.Close()
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
