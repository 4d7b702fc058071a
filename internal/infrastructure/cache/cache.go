// Package cache provides the TTL cache used to de-duplicate registrar
// lookups within a batch.  Two backends exist: an in-process store for
// single-binary runs and a redis store for fleets sharing lookup results.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/regintel/regintel/pkg/errors"
)

// ErrMiss marks an absent key.  Callers compare with errors.Is.
var ErrMiss = errors.New(errors.ErrCodeNotFound, "cache miss")

// StatsObserver receives hit/miss events from a backend.  The prometheus
// Metrics type satisfies it.
type StatsObserver interface {
	ObserveCacheHit()
	ObserveCacheMiss()
}

type nopStats struct{}

func (nopStats) ObserveCacheHit()  {}
func (nopStats) ObserveCacheMiss() {}

// Cache is a TTL key-value store safe for concurrent use.  Values are
// JSON-serialized; dest in Get must be a pointer.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// GetOrLoad returns the cached value or runs loader once, caching its
	// result.  Concurrent callers for the same key share one loader run.
	GetOrLoad(ctx context.Context, key string, dest interface{}, ttl time.Duration,
		loader func(ctx context.Context) (interface{}, error)) error
}

func marshal(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "marshal cache value")
	}
	return data, nil
}

func unmarshal(data []byte, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "unmarshal cache value")
	}
	return nil
}
