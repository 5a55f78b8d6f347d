package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eld-trip-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Redis-backed cache for computed routes, keyed by the normalized waypoint
// triple. Routes are immutable planning data so a plain TTL eviction is
// sufficient.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRouteCache(rdb *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb, ttl: ttl}
}

func (c *RedisRouteCache) cacheKey(key string) string {
	return "route:" + key
}

// Get returns the cached route for a waypoint key and whether it was found.
func (c *RedisRouteCache) Get(ctx context.Context, key string) (*domain.Route, bool, error) {
	if c.rdb == nil {
		return nil, false, errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return nil, false, errors.New("route cache: key must not be empty")
	}

	val, err := c.rdb.Get(ctx, c.cacheKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache: get %q: %w", key, err)
	}

	var route domain.Route
	if err := json.Unmarshal([]byte(val), &route); err != nil {
		return nil, false, fmt.Errorf("route cache: decode %q: %w", key, err)
	}

	return &route, true, nil
}

// Put stores a route with the configured TTL.
func (c *RedisRouteCache) Put(ctx context.Context, key string, route *domain.Route) error {
	if c.rdb == nil {
		return errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return errors.New("route cache: key must not be empty")
	}
	if route == nil {
		return errors.New("route cache: route must not be nil")
	}

	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("route cache: encode %q: %w", key, err)
	}

	if err := c.rdb.Set(ctx, c.cacheKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("route cache: set %q: %w", key, err)
	}

	return nil
}
