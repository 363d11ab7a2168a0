package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"conflux/internal/raid/models"
)

// CachedRegistry is a read-through cache in front of a Registry. Registry
// reads are slow and rate-limited; minted metadata changes only through this
// service, so a short TTL is safe. Cache failures degrade to the inner
// client, never to an error.
type CachedRegistry struct {
	inner  Registry
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps inner with a redis read cache.
func NewCached(inner Registry, cache *redis.Client, ttl time.Duration, logger *slog.Logger) (*CachedRegistry, error) {
	if inner == nil {
		return nil, fmt.Errorf("inner registry is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRegistry{inner: inner, cache: cache, ttl: ttl, logger: logger}, nil
}

func cacheKey(prefix, suffix string) string {
	return "raid:" + prefix + "/" + suffix
}

func (c *CachedRegistry) Get(ctx context.Context, prefix, suffix string) (*models.RaidDto, error) {
	key := cacheKey(prefix, suffix)

	raw, err := c.cache.Get(ctx, key).Bytes()
	if err == nil {
		var dto models.RaidDto
		if err := json.Unmarshal(raw, &dto); err == nil {
			return &dto, nil
		}
		// Corrupt entry; fall through to the registry and overwrite.
		c.logger.WarnContext(ctx, "discarding corrupt registry cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "registry cache read failed", "key", key, "error", err)
	}

	dto, err := c.inner.Get(ctx, prefix, suffix)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, dto)
	return dto, nil
}

// Mint is a pure pass-through: the new identifier is not known until the
// registry responds, and the caller immediately persists it anyway.
func (c *CachedRegistry) Mint(ctx context.Context, req *models.CreateRequest) (*models.RaidDto, error) {
	return c.inner.Mint(ctx, req)
}

// Update writes through: a successful update replaces the cached record.
func (c *CachedRegistry) Update(ctx context.Context, prefix, suffix string, req *models.UpdateRequest) (*models.RaidDto, error) {
	dto, err := c.inner.Update(ctx, prefix, suffix, req)
	if err != nil {
		return nil, err
	}
	c.store(ctx, cacheKey(prefix, suffix), dto)
	return dto, nil
}

func (c *CachedRegistry) store(ctx context.Context, key string, dto *models.RaidDto) {
	raw, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "registry cache write failed", "key", key, "error", err)
	}
}
