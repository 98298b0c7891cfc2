package memcache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"wayfarer/pkg/observability"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// JSONCache stores JSON-encoded values under string keys.
type JSONCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RedisCache is the shared cache used when REDIS_ADDR is configured.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			observability.ObserveCache("redis", "miss")
			return ErrCacheMiss
		}
		return err
	}
	observability.ObserveCache("redis", "hit")
	return json.Unmarshal(raw, dest)
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}

type memItem struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryCache keeps values in process memory.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memItem
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memItem), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || (!item.expiresAt.IsZero() && c.now().After(item.expiresAt)) {
		observability.ObserveCache("memory", "miss")
		return ErrCacheMiss
	}
	observability.ObserveCache("memory", "hit")
	return json.Unmarshal(item.raw, dest)
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	item := memItem{raw: raw}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}
