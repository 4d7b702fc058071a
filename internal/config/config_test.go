package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestDefaultsProduceValidConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "GB", cfg.Extraction.DefaultJurisdiction)
	assert.Equal(t, 200, cfg.Extraction.SparseTextChars)
	assert.Equal(t, 10*time.Second, cfg.Registrar.Timeout)
	assert.Equal(t, time.Hour, cfg.Registrar.CacheTTL)
	assert.Equal(t, "memory", cfg.Registrar.CacheBackend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Extraction.DefaultJurisdiction = "DE"
	cfg.Registrar.Timeout = 3 * time.Second
	ApplyDefaults(cfg)

	assert.Equal(t, "DE", cfg.Extraction.DefaultJurisdiction)
	assert.Equal(t, 3*time.Second, cfg.Registrar.Timeout)
}

func TestValidateRejectsUnknownJurisdiction(t *testing.T) {
	cfg := validConfig()
	cfg.Extraction.DefaultJurisdiction = "XX"
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsJurisdictionAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Extraction.DefaultJurisdiction = "UK"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Registrar.CacheBackend = "memcached"
	assert.Error(t, cfg.Validate())
}

func TestValidateRedisBackendNeedsAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Registrar.CacheBackend = "redis"
	assert.Error(t, cfg.Validate())

	cfg.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
extraction:
  default_jurisdiction: DE
registrar:
  timeout: 5s
  cache_backend: redis
redis:
  addr: localhost:6379
log:
  level: debug
  format: console
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DE", cfg.Extraction.DefaultJurisdiction)
	assert.Equal(t, 5*time.Second, cfg.Registrar.Timeout)
	assert.Equal(t, "redis", cfg.Registrar.CacheBackend)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset fields fall back to defaults.
	assert.Equal(t, time.Hour, cfg.Registrar.CacheTTL)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidConfigFails(t *testing.T) {
	yaml := "extraction:\n  default_jurisdiction: XX\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
