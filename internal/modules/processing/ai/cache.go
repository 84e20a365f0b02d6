package ai

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	redisc "github.com/revyse/core/internal/pkg/redis"
)

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int64 `json:"size"`
}

// Cache maps request fingerprints to generated artifacts. Implementations
// must degrade to always-miss on backend failure; a broken cache never
// fails a generation.
type Cache interface {
	Get(ctx context.Context, key string) (*Artifact, bool)
	Put(ctx context.Context, key string, art *Artifact)
	Clear(ctx context.Context) error
	Prune(ctx context.Context, maxAge time.Duration) int
	Stats(ctx context.Context) CacheStats
}

// memoryCache is the default in-process cache with a bounded entry count.
type memoryCache struct {
	mu         sync.Mutex
	entries    map[string]*Artifact
	maxEntries int
	hits       int64
	misses     int64
}

// NewMemoryCache creates a mutex-guarded in-process cache. maxEntries <= 0
// means unbounded.
func NewMemoryCache(maxEntries int) Cache {
	return &memoryCache{
		entries:    make(map[string]*Artifact),
		maxEntries: maxEntries,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) (*Artifact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	art, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return art, ok
}

func (c *memoryCache) Put(_ context.Context, key string, art *Artifact) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = art
}

func (c *memoryCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for k, v := range c.entries {
		if oldestKey == "" || v.CreatedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = v.CreatedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *memoryCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Artifact)
	c.hits = 0
	c.misses = 0
	return nil
}

func (c *memoryCache) Prune(_ context.Context, maxAge time.Duration) int {
	if maxAge <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-maxAge)

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, v := range c.entries {
		if v.CreatedAt.Before(cutoff) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *memoryCache) Stats(context.Context) CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Size: int64(len(c.entries))}
}

const redisCachePrefix = "revyse:aicache:"

// redisCache shares artifacts across processes. Entries expire via TTL
// when maxAge is configured.
type redisCache struct {
	rc     *redisc.Client
	maxAge time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCache creates a Redis-backed artifact cache.
func NewRedisCache(rc *redisc.Client, maxAge time.Duration) Cache {
	return &redisCache{rc: rc, maxAge: maxAge}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Artifact, bool) {
	data, err := c.rc.Get(ctx, redisCachePrefix+key)
	if err != nil || data == "" {
		c.misses.Add(1)
		return nil, false
	}
	var art Artifact
	if err := json.Unmarshal([]byte(data), &art); err != nil {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &art, true
}

func (c *redisCache) Put(ctx context.Context, key string, art *Artifact) {
	data, err := json.Marshal(art)
	if err != nil {
		return
	}
	// best effort, a failed write is just a future miss
	_ = c.rc.Set(ctx, redisCachePrefix+key, data, c.maxAge)
}

func (c *redisCache) Clear(ctx context.Context) error {
	keys, err := c.scanKeys(ctx)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := c.rc.Del(ctx, keys...); err != nil {
			return err
		}
	}
	c.hits.Store(0)
	c.misses.Store(0)
	return nil
}

func (c *redisCache) Prune(context.Context, time.Duration) int {
	// TTL-based expiry, nothing to sweep
	return 0
}

func (c *redisCache) Stats(ctx context.Context) CacheStats {
	size := int64(0)
	if keys, err := c.scanKeys(ctx); err == nil {
		size = int64(len(keys))
	}
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   size,
	}
}

func (c *redisCache) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := c.rc.Raw().Scan(ctx, cursor, redisCachePrefix+"*", 200).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}
