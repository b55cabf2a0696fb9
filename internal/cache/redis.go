package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/logger"
	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// redisCache stores JSON-encoded values under prefix+key.
// Redis failures degrade to cache misses.
type redisCache[V any] struct {
	rdb    *redis.Client
	prefix string
	log    *logger.Logger
}

// NewRedisClient parses a redis:// URL into a client
func NewRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewRedisCache wraps a redis client. The connection is checked once.
func NewRedisCache[V any](ctx context.Context, rdb *redis.Client, prefix string, log *logger.Logger) (Cache[string, V], error) {
	if rdb == nil {
		return nil, errors.New("redis client must be non-nil")
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	if log == nil {
		log = logger.Get()
	}
	return &redisCache[V]{
		rdb:    rdb,
		prefix: prefix,
		log:    log.WithComponent("redis_cache"),
	}, nil
}

func (c *redisCache[V]) key(k string) string {
	return c.prefix + k
}

func (c *redisCache[V]) Set(key string, value V, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Failed to encode cache value", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if ttl < 0 {
		ttl = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := c.rdb.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		c.log.Warn("Failed to store cache value", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (c *redisCache[V]) Get(key string) (V, bool) {
	var zero V

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Failed to read cache value", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return zero, false
	}

	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		c.log.Warn("Failed to decode cache value", map[string]interface{}{"key": key, "error": err.Error()})
		return zero, false
	}
	return value, true
}

func (c *redisCache[V]) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := c.rdb.Del(ctx, c.key(key)).Err(); err != nil {
		c.log.Warn("Failed to delete cache value", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// Clear removes every key under the prefix
func (c *redisCache[V]) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Failed to clear cache", map[string]interface{}{"error": err.Error()})
	}
}
