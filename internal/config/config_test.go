package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	assert.Error(t, err)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
lang: nb
mode: increase
log:
  level: debug
server:
  port: 9090
  rate_limit:
    requests: 10
    window: 30s
cache:
  backend: redis
  redis:
    addr: redis:6379
    db: 2
    ttl: 1h
`)
	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "nb", cfg.Lang)
	assert.Equal(t, domain.Increase, cfg.Mode)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, RateLimitConfig{Requests: 10, Window: 30 * time.Second}, cfg.Server.RateLimit)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Cache.Redis.TTL)
	// Untouched keys keep their defaults.
	assert.Equal(t, "knitcalc:result:", cfg.Cache.Redis.Prefix)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad yaml", "lang: [", "parse config"},
		{"mode", "mode: purl", "mode:"},
		{"log level", "log: {level: loud}", "log.level"},
		{"port", "server: {port: 0}", "server.port"},
		{"rate window", "server: {rate_limit: {requests: 5, window: 0s}}", "server.rate_limit.window"},
		{"backend", "cache: {backend: disk}", "cache.backend"},
		{"max entries", "cache: {max_entries: 0}", "cache.max_entries"},
		{"redis addr", "cache: {backend: redis, redis: {addr: ''}}", "cache.redis.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
