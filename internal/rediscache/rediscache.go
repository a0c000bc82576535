// Package rediscache backs the sample cache with Redis so multiple engine
// instances behind one map client share composited terrain.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LuminariMUD/wildeditor-sub001/internal/monitoring"
	"github.com/LuminariMUD/wildeditor-sub001/internal/wilderness"
)

const opTimeout = 250 * time.Millisecond

// Cache implements wilderness.Cache on a Redis client. Redis failures are
// treated as misses; the engine recomputes rather than erroring.
type Cache struct {
	rdb *redis.Client
}

// New wraps an existing Redis client.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// OpenFromEnv builds a Redis-backed cache from REDIS_ADDR/REDIS_PASS/REDIS_DB.
// Returns nil when REDIS_ADDR is unset, in which case callers fall back to
// the in-memory cache.
func OpenFromEnv() *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		fmt.Sscanf(v, "%d", &db)
	}
	return New(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       db,
	}))
}

// Key layout: terrain:v{version}:{x}:{y}. The version component makes stale
// entries unreachable after a geometry edit without explicit invalidation.
func key(p wilderness.Coordinate, version uint64) string {
	return fmt.Sprintf("terrain:v%d:%d:%d", version, p.X, p.Y)
}

// Get fetches the cached terrain for (p, version).
func (c *Cache) Get(p wilderness.Coordinate, version uint64) (wilderness.EffectiveTerrain, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := c.rdb.Get(ctx, key(p, version)).Bytes()
	if err != nil {
		if err != redis.Nil {
			monitoring.Logf("redis cache get failed: %v", err)
		}
		return wilderness.EffectiveTerrain{}, false
	}
	var t wilderness.EffectiveTerrain
	if err := json.Unmarshal(raw, &t); err != nil {
		monitoring.Logf("redis cache entry corrupt: %v", err)
		return wilderness.EffectiveTerrain{}, false
	}
	return t, true
}

// Put stores value for (p, version) with the given TTL.
func (c *Cache) Put(p wilderness.Coordinate, version uint64, value wilderness.EffectiveTerrain, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		monitoring.Logf("redis cache marshal failed: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := c.rdb.Set(ctx, key(p, version), raw, ttl).Err(); err != nil {
		monitoring.Logf("redis cache put failed: %v", err)
	}
}
