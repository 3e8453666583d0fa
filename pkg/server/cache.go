package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/n1kyfn/restaurant/pkg/menuapi"
	"github.com/n1kyfn/restaurant/pkg/types"
)

type localEntry struct {
	expires time.Time
	data    []byte
}

// Cache is a small redis-backed cache with a short in-process layer in
// front of it. Values are stored as JSON either way.
type Cache struct {
	client   *redis.Client
	ctx      context.Context
	mu       sync.Mutex
	memCache map[string]localEntry
	memTtl   time.Duration
}

func NewCache(addr, password string, db int) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ctx:      context.Background(),
		memCache: make(map[string]localEntry),
		memTtl:   time.Minute,
	}
}

func (c *Cache) Get(key string, out any) error {
	c.mu.Lock()
	local, found := c.memCache[key]
	if found && time.Now().Before(local.expires) {
		c.mu.Unlock()
		return json.Unmarshal(local.data, out)
	}
	if found {
		delete(c.memCache, key)
	}
	c.mu.Unlock()

	data, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return err
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{expires: time.Now().Add(c.memTtl), data: []byte(data)}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{expires: time.Now().Add(min(expiration, c.memTtl)), data: data}
	c.mu.Unlock()
	return c.client.Set(c.ctx, key, data, expiration).Err()
}

// Flush drops the in-process layer and every key under the given prefix.
// Used when a menu_changed event arrives.
func (c *Cache) Flush(prefix string) error {
	c.mu.Lock()
	c.memCache = make(map[string]localEntry)
	c.mu.Unlock()

	iter := c.client.Scan(c.ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(c.ctx) {
		if err := c.client.Del(c.ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Close() {
	c.client.Close()
}

const menuCachePrefix = "menu:"

// CachedRepository caches upstream catalog responses per query. Fetch
// failures are never cached; a menu_changed event flushes everything.
type CachedRepository struct {
	Inner menuapi.Repository
	Cache *Cache
	Ttl   time.Duration
}

func (r *CachedRepository) FetchItems(ctx context.Context, q menuapi.Query) ([]types.MenuItem, error) {
	key := menuCachePrefix + q.Values().Encode()
	var cached []types.MenuItem
	if err := r.Cache.Get(key, &cached); err == nil {
		return cached, nil
	}
	items, err := r.Inner.FetchItems(ctx, q)
	if err != nil {
		return nil, err
	}
	// cache trouble must not fail the fetch
	_ = r.Cache.Set(key, items, r.Ttl)
	return items, nil
}

func (r *CachedRepository) Invalidate() error {
	return r.Cache.Flush(menuCachePrefix)
}
