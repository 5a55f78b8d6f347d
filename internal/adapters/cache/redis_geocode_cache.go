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

// Redis-backed cache for address -> coordinates lookups. Keys are expected
// to be consistent (e.g., already normalized) by the caller.
type RedisGeocodeCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGeocodeCache(rdb *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{rdb: rdb, ttl: ttl}
}

func (c *RedisGeocodeCache) key(address string) string {
	return "geocode:" + address
}

// Get returns the cached coordinates for an address and whether they were found.
func (c *RedisGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	if c.rdb == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}
	if address == "" {
		return domain.Coordinates{}, false, errors.New("geocode cache: address must not be empty")
	}

	val, err := c.rdb.Get(ctx, c.key(address)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache: get %q: %w", address, err)
	}

	var coords domain.Coordinates
	if err := json.Unmarshal([]byte(val), &coords); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache: decode %q: %w", address, err)
	}

	return coords, true, nil
}

// Put stores coordinates for an address with the configured TTL.
func (c *RedisGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if c.rdb == nil {
		return errors.New("geocode cache: redis client is nil")
	}
	if address == "" {
		return errors.New("geocode cache: address must not be empty")
	}

	data, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("geocode cache: encode %q: %w", address, err)
	}

	if err := c.rdb.Set(ctx, c.key(address), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("geocode cache: set %q: %w", address, err)
	}

	return nil
}
