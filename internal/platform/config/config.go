// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr             string
	PostgresURL      string
	Redis            Redis
	Registry         Registry
	LanguageTableURL string
}

// Redis captures cache connection settings. An empty URL disables the cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Registry captures external RAiD registry settings.
type Registry struct {
	BaseURL  string
	APIKey   string
	CacheTTL time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("CONFLUX_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:        addr,
		PostgresURL: os.Getenv("CONFLUX_POSTGRES_URL"),
		Redis: Redis{
			URL:          os.Getenv("CONFLUX_REDIS_URL"),
			PoolSize:     envInt("CONFLUX_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CONFLUX_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("CONFLUX_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("CONFLUX_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("CONFLUX_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Registry: Registry{
			BaseURL:  os.Getenv("RAID_BASE_URL"),
			APIKey:   os.Getenv("RAID_API_KEY"),
			CacheTTL: envDuration("RAID_CACHE_TTL", 5*time.Minute),
		},
		LanguageTableURL: os.Getenv("LANGUAGE_TABLE_URL"),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
