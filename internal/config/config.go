// Package config defines all configuration structures for the regintel
// engine.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ExtractionConfig holds extraction-engine tunables.
type ExtractionConfig struct {
	// DefaultJurisdiction is used when neither TLD nor keyword scoring can
	// decide.  The fallback is deliberate and configurable, not hard-coded.
	DefaultJurisdiction string `mapstructure:"default_jurisdiction"`

	// SparseTextChars is the threshold below which a cleaned page is
	// treated as a JS-rendered shell and the rendered-markdown fallback is
	// preferred.
	SparseTextChars int `mapstructure:"sparse_text_chars"`
}

// RegistrarConfig holds RDAP/WHOIS lookup tunables.
type RegistrarConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	CacheBackend string        `mapstructure:"cache_backend"` // "memory" | "redis"
	CachePrefix  string        `mapstructure:"cache_prefix"`
}

// RedisConfig holds Redis connection parameters for the shared lookup cache.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the engine.
type Config struct {
	Extraction ExtractionConfig  `mapstructure:"extraction"`
	Registrar  RegistrarConfig   `mapstructure:"registrar"`
	Redis      RedisConfig       `mapstructure:"redis"`
	Metrics    MetricsConfig     `mapstructure:"metrics"`
	Log        logging.LogConfig `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	registry := jurisdiction.NewRegistry()
	if _, err := registry.Normalize(c.Extraction.DefaultJurisdiction); err != nil {
		return fmt.Errorf("config: extraction.default_jurisdiction %q is not a known jurisdiction",
			c.Extraction.DefaultJurisdiction)
	}
	if c.Extraction.SparseTextChars < 0 {
		return fmt.Errorf("config: extraction.sparse_text_chars must be >= 0, got %d",
			c.Extraction.SparseTextChars)
	}

	if c.Registrar.Timeout <= 0 {
		return fmt.Errorf("config: registrar.timeout must be positive, got %s", c.Registrar.Timeout)
	}
	if c.Registrar.CacheTTL <= 0 {
		return fmt.Errorf("config: registrar.cache_ttl must be positive, got %s", c.Registrar.CacheTTL)
	}
	switch c.Registrar.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: registrar.cache_backend %q is invalid; expected memory|redis",
			c.Registrar.CacheBackend)
	}
	if c.Registrar.CacheBackend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when registrar.cache_backend is redis")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
