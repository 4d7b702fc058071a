package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
	"github.com/regintel/regintel/pkg/errors"
)

type redisCache struct {
	client *redis.Client
	prefix string
	group  singleflight.Group
	logger logging.Logger
	stats  StatsObserver
}

// RedisOption tunes the redis backend.
type RedisOption func(*redisCache)

// WithPrefix namespaces all keys.
func WithPrefix(prefix string) RedisOption {
	return func(c *redisCache) { c.prefix = prefix }
}

// WithRedisStats attaches a hit/miss observer.
func WithRedisStats(stats StatsObserver) RedisOption {
	return func(c *redisCache) {
		if stats != nil {
			c.stats = stats
		}
	}
}

// NewRedis builds the shared redis backend.
func NewRedis(client *redis.Client, log logging.Logger, opts ...RedisOption) Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &redisCache{
		client: client,
		prefix: "regintel:",
		logger: log.Named("cache.redis"),
		stats:  nopStats{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *redisCache) fullKey(key string) string { return c.prefix + key }

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		c.stats.ObserveCacheMiss()
		return ErrMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "redis get")
	}
	c.stats.ObserveCacheHit()
	return unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "redis set")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "redis del")
	}
	return nil
}

func (c *redisCache) GetOrLoad(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		// Redis being down must not break lookups; fall through to the
		// loader and skip caching.
		c.logger.Warn("cache unavailable, loading directly", logging.Err(err))
	}

	data, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		raw, marshalErr := marshal(v)
		if marshalErr != nil {
			return nil, marshalErr
		}
		if setErr := c.Set(ctx, key, v, ttl); setErr != nil {
			c.logger.Warn("cache write failed", logging.String("key", key), logging.Err(setErr))
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return unmarshal(data.([]byte), dest)
}
