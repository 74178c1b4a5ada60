package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/config"
)

const keyPrefix = "brewquest:"

// Cache is a JSON cache on top of Redis. A Cache without a client is a no-op that always misses.
type Cache struct {
	rdb    *goredis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCache connects to Redis when cfg.Addr is set
func NewCache(cfg *config.RedisConfig, logger zerolog.Logger) (*Cache, error) {
	c := &Cache{ttl: cfg.TTL, logger: logger}
	if cfg.Addr == "" {
		logger.Info().Msg("REDIS_ADDR not set, published-beer cache disabled")
		return c, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	c.rdb = rdb
	logger.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("redis cache connected")
	return c, nil
}

// Enabled reports whether a Redis client is attached
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON loads key into dest and reports whether it was found
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value under key with the configured TTL
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// GetInt loads an integer counter. A missing key reads as zero.
func (c *Cache) GetInt(ctx context.Context, key string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}

	n, err := c.rdb.Get(ctx, keyPrefix+key).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", key, err)
	}
	return n, nil
}

// Incr bumps a counter and returns its new value. Counters never expire.
func (c *Cache) Incr(ctx context.Context, key string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}

	n, err := c.rdb.Incr(ctx, keyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return n, nil
}

// Delete removes keys
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	if err := c.rdb.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping checks connectivity. A disabled cache is always healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
