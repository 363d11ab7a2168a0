package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.PostgresURL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5*time.Minute, cfg.Registry.CacheTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CONFLUX_ADDR", ":9999")
	t.Setenv("CONFLUX_POSTGRES_URL", "postgres://localhost/conflux")
	t.Setenv("CONFLUX_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CONFLUX_REDIS_POOL_SIZE", "25")
	t.Setenv("RAID_BASE_URL", "https://api.demo.raid.org.au")
	t.Setenv("RAID_API_KEY", "secret")
	t.Setenv("RAID_CACHE_TTL", "90s")
	t.Setenv("LANGUAGE_TABLE_URL", "https://example.org/iso-639-3.tab")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres://localhost/conflux", cfg.PostgresURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 25, cfg.Redis.PoolSize)
	assert.Equal(t, "https://api.demo.raid.org.au", cfg.Registry.BaseURL)
	assert.Equal(t, "secret", cfg.Registry.APIKey)
	assert.Equal(t, 90*time.Second, cfg.Registry.CacheTTL)
	assert.Equal(t, "https://example.org/iso-639-3.tab", cfg.LanguageTableURL)
}

func TestInvalidNumericEnvFallsBack(t *testing.T) {
	t.Setenv("CONFLUX_REDIS_POOL_SIZE", "not-a-number")
	t.Setenv("RAID_CACHE_TTL", "soon")

	cfg := FromEnv()

	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5*time.Minute, cfg.Registry.CacheTTL)
}
