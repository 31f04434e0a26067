package feature

import (
	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/logger"
)

// Cache memoises derived values per item. It is owned by one Derived feature
// and is not safe for concurrent writers.
type Cache struct {
	// entries stays nil until the first value is stored.
	entries map[graphid.GraphItemID]Value
	hits    int
	misses  int
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits   int
	Misses int
	Size   int
}

func newCache() *Cache {
	return &Cache{}
}

func (c *Cache) get(id graphid.GraphItemID) (Value, bool) {
	v, ok := c.entries[id]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *Cache) put(id graphid.GraphItemID, v Value) {
	if c.entries == nil {
		c.entries = make(map[graphid.GraphItemID]Value)
	}
	c.entries[id] = v
}

// EnableCaching starts memoising values. Enabling an already caching feature
// keeps its entries.
func (f *Derived) EnableCaching() {
	if f.cache == nil {
		f.cache = newCache()
	}
}

// DisableCaching stops memoising and drops all entries.
func (f *Derived) DisableCaching() {
	if f.cache != nil {
		logger.Debug("[Cache] Caching disabled", "entries", len(f.cache.entries), "hits", f.cache.hits, "misses", f.cache.misses)
	}
	f.cache = nil
}

// IsCaching reports whether values are memoised.
func (f *Derived) IsCaching() bool {
	return f.cache != nil
}

// IsCached reports whether a value for id is memoised.
func (f *Derived) IsCached(id graphid.GraphItemID) bool {
	if f.cache == nil {
		return false
	}
	_, ok := f.cache.entries[id]
	return ok
}

// ResetCache drops every entry. It fails when caching is disabled.
func (f *Derived) ResetCache() error {
	if f.cache == nil {
		return common.InvalidOperationf("cannot reset cache: caching is not enabled")
	}
	clear(f.cache.entries)
	return nil
}

// ResetCacheFor drops the entry of one item. It fails when caching is
// disabled, and when nothing has ever been stored.
func (f *Derived) ResetCacheFor(id graphid.GraphItemID) error {
	if f.cache == nil {
		return common.InvalidOperationf("cannot reset cache of %s: caching is not enabled", id)
	}
	if f.cache.entries == nil {
		return common.InvalidStatef("cannot reset cache of %s: cache was never populated", id)
	}
	delete(f.cache.entries, id)
	return nil
}

// CacheStats returns the cache counters. The zero value is returned when
// caching is disabled.
func (f *Derived) CacheStats() CacheStats {
	if f.cache == nil {
		return CacheStats{}
	}
	return CacheStats{
		Hits:   f.cache.hits,
		Misses: f.cache.misses,
		Size:   len(f.cache.entries),
	}
}
