package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

type memoryCache struct {
	store  *gocache.Cache
	group  singleflight.Group
	logger logging.Logger
	stats  StatsObserver
}

// MemoryOption tunes the in-process backend.
type MemoryOption func(*memoryCache)

// WithMemoryStats attaches a hit/miss observer.
func WithMemoryStats(stats StatsObserver) MemoryOption {
	return func(c *memoryCache) {
		if stats != nil {
			c.stats = stats
		}
	}
}

// NewMemory builds the in-process backend.  Expired entries are swept at
// twice the default TTL.
func NewMemory(defaultTTL time.Duration, log logging.Logger, opts ...MemoryOption) Cache {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &memoryCache{
		store:  gocache.New(defaultTTL, 2*defaultTTL),
		logger: log.Named("cache.memory"),
		stats:  nopStats{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.store.Get(key)
	if !ok {
		c.stats.ObserveCacheMiss()
		return ErrMiss
	}
	c.stats.ObserveCacheHit()
	return unmarshal(raw.([]byte), dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := marshal(value)
	if err != nil {
		return err
	}
	c.store.Set(key, data, ttl)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.store.Delete(k)
	}
	return nil
}

func (c *memoryCache) GetOrLoad(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
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
		c.store.Set(key, raw, ttl)
		return raw, nil
	})
	if err != nil {
		return err
	}
	return unmarshal(data.([]byte), dest)
}
