package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/ppiankov/surveyreport/internal/model"
)

// MemoryCache keeps loaded tables in process memory
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache. A defaultTTL of 0 keeps entries
// for the lifetime of the process.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a table from the cache
func (c *MemoryCache) Get(key string) (*model.RawTable, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(*model.RawTable), true
	}
	return nil, false
}

// Set stores a table. A ttl of 0 uses the cache default.
func (c *MemoryCache) Set(key string, table *model.RawTable, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, table, ttl)
	return nil
}

// Delete removes a table from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all tables from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// NopCache never stores anything; used when caching is disabled
type NopCache struct{}

func (NopCache) Get(string) (*model.RawTable, bool) { return nil, false }
func (NopCache) Set(string, *model.RawTable, time.Duration) error { return nil }
func (NopCache) Delete(string) error { return nil }
func (NopCache) Clear() error { return nil }
