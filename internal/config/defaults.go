package config

import "time"

// Default values applied to unset fields.  Kept in one place so operators
// can read the effective baseline without chasing code.
const (
	DefaultJurisdiction    = "GB"
	DefaultSparseTextChars = 200

	DefaultRegistrarTimeout  = 10 * time.Second
	DefaultRegistrarCacheTTL = time.Hour
	DefaultCacheBackend      = "memory"
	DefaultCachePrefix       = "regintel:"

	DefaultRedisPoolSize     = 10
	DefaultRedisDialTimeout  = 5 * time.Second
	DefaultRedisReadTimeout  = 3 * time.Second
	DefaultRedisWriteTimeout = 3 * time.Second

	DefaultMetricsNamespace = "regintel"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills zero-valued fields with the platform defaults.
// Explicitly-set values are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg.Extraction.DefaultJurisdiction == "" {
		cfg.Extraction.DefaultJurisdiction = DefaultJurisdiction
	}
	if cfg.Extraction.SparseTextChars == 0 {
		cfg.Extraction.SparseTextChars = DefaultSparseTextChars
	}

	if cfg.Registrar.Timeout == 0 {
		cfg.Registrar.Timeout = DefaultRegistrarTimeout
	}
	if cfg.Registrar.CacheTTL == 0 {
		cfg.Registrar.CacheTTL = DefaultRegistrarCacheTTL
	}
	if cfg.Registrar.CacheBackend == "" {
		cfg.Registrar.CacheBackend = DefaultCacheBackend
	}
	if cfg.Registrar.CachePrefix == "" {
		cfg.Registrar.CachePrefix = DefaultCachePrefix
	}

	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisDialTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisReadTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisWriteTimeout
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}
}
