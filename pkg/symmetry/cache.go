package symmetry

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultOrbitCacheSize bounds the number of cached orbits.
const DefaultOrbitCacheSize = 4096

// OrbitCache memoizes orbits by napkin content. Entries are only valid for
// one compilation: Purge it (or create a new one) between independent inputs.
// A nil *OrbitCache disables caching.
type OrbitCache struct {
	orbits *lru.Cache[string, [][]int]
	hits   int
	misses int
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits   int
	Misses int
	Len    int
}

// NewOrbitCache creates a cache holding at most size orbits.
func NewOrbitCache(size int) (*OrbitCache, error) {
	if size <= 0 {
		size = DefaultOrbitCacheSize
	}
	orbits, err := lru.New[string, [][]int](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create orbit cache: %w", err)
	}
	return &OrbitCache{orbits: orbits}, nil
}

func (c *OrbitCache) get(key string) ([][]int, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.orbits.Get(key)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *OrbitCache) add(key string, orbit [][]int) {
	if c == nil {
		return
	}
	c.orbits.Add(key, orbit)
}

// Purge drops every entry and resets the counters.
func (c *OrbitCache) Purge() {
	if c == nil {
		return
	}
	c.orbits.Purge()
	c.hits, c.misses = 0, 0
}

// Stats returns the counters since the last Purge.
func (c *OrbitCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{Hits: c.hits, Misses: c.misses, Len: c.orbits.Len()}
}
