package cache

import (
	"fmt"
	"time"
	"yatube/internal/monitoring"

	lru "github.com/hashicorp/golang-lru/v2"
)

// entry 包装缓存数据和过期时间
type entry struct {
	Data      any
	ExpiresAt time.Time
}

// PageCache is a size-bounded cache of rendered page data with a per-entry
// TTL. Entries are never invalidated by writes; they expire or get cleared.
type PageCache struct {
	lruCache *lru.Cache[string, entry]
	now      func() time.Time
}

// New creates a cache holding at most size entries.
func New(size int) (*PageCache, error) {
	l, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &PageCache{
		lruCache: l,
		now:      time.Now,
	}, nil
}

// WithClock replaces the time source. Tests use it to step past a TTL.
func (c *PageCache) WithClock(now func() time.Time) *PageCache {
	c.now = now
	return c
}

// Set 设置缓存，TTL 为过期时间
func (c *PageCache) Set(key string, data any, ttl time.Duration) {
	c.lruCache.Add(key, entry{
		Data:      data,
		ExpiresAt: c.now().Add(ttl),
	})
}

// Get returns the cached value, or nil when missing or expired.
func (c *PageCache) Get(key string) any {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	if !c.now().Before(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Lookup is Get with hit/miss accounting.
func (c *PageCache) Lookup(key string) (any, bool) {
	if data := c.Get(key); data != nil {
		monitoring.PageCacheLookups.WithLabelValues("hit").Inc()
		return data, true
	}
	monitoring.PageCacheLookups.WithLabelValues("miss").Inc()
	return nil, false
}

// Delete 删除指定缓存
func (c *PageCache) Delete(key string) {
	c.lruCache.Remove(key)
}

// Clear drops every entry.
func (c *PageCache) Clear() {
	c.lruCache.Purge()
}

// Len counts stored entries, expired ones included until they are read.
func (c *PageCache) Len() int {
	return c.lruCache.Len()
}
