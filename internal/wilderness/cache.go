package wilderness

import (
	"sync"
	"time"

	"github.com/LuminariMUD/wildeditor-sub001/internal/timeutil"
)

// Cache memoizes compositor output for hot coordinates between geometry
// edits. Keys include the geometry version so a stale entry computed against
// an old snapshot is never served after an edit; correctness beats hit rate.
type Cache interface {
	Get(p Coordinate, version uint64) (EffectiveTerrain, bool)
	Put(p Coordinate, version uint64, value EffectiveTerrain, ttl time.Duration)
}

type cacheKey struct {
	X, Y    int
	Version uint64
}

type cacheEntry struct {
	value   EffectiveTerrain
	expires time.Time
}

// MemoryCache is the in-process TTL cache. Map viewport traffic is bursty and
// short-lived, so plain TTL expiry is enough; there is no LRU.
type MemoryCache struct {
	clock timeutil.Clock

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

// NewMemoryCache builds an empty cache driven by clock.
func NewMemoryCache(clock timeutil.Clock) *MemoryCache {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &MemoryCache{
		clock:   clock,
		entries: make(map[cacheKey]cacheEntry),
	}
}

// Get returns the cached terrain for (p, version), treating expired entries
// as misses.
func (c *MemoryCache) Get(p Coordinate, version uint64) (EffectiveTerrain, bool) {
	key := cacheKey{X: p.X, Y: p.Y, Version: version}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return EffectiveTerrain{}, false
	}
	if c.clock.Now().After(entry.expires) {
		delete(c.entries, key)
		return EffectiveTerrain{}, false
	}
	return entry.value, true
}

// Put stores value for (p, version) until ttl elapses. Expired entries are
// swept opportunistically to keep the map from growing across versions.
func (c *MemoryCache) Put(p Coordinate, version uint64, value EffectiveTerrain, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	now := c.clock.Now()
	key := cacheKey{X: p.X, Y: p.Y, Version: version}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= sweepThreshold {
		for k, e := range c.entries {
			if now.After(e.expires) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = cacheEntry{value: value, expires: now.Add(ttl)}
}

// Len returns the number of live and expired entries currently held.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

const sweepThreshold = 16384
