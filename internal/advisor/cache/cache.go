// Package cache provides an optional Redis-backed result cache for advise
// invocations. The engine is deterministic for a given context and options,
// which makes its output safe to cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"counsel/internal/domain"
	"counsel/internal/platform/redis"
)

const keyPrefix = "counsel:advise:"

// DefaultTTL bounds staleness against registry rule and knowledge updates,
// which do not invalidate cached results.
const DefaultTTL = 5 * time.Minute

// Cache stores advise results under their request fingerprint. All failures
// are fail-open: a broken cache degrades to recomputation, never to an error.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached result for a fingerprint, if present.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Result, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.WarnContext(ctx, "result cache read failed", "error", err)
		}
		return nil, false
	}

	var result domain.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		c.logger.WarnContext(ctx, "result cache entry corrupt, ignoring", "error", err)
		return nil, false
	}
	return &result, true
}

// Set stores a result under its fingerprint with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, result *domain.Result) {
	payload, err := json.Marshal(result)
	if err != nil {
		c.logger.WarnContext(ctx, "result cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "result cache write failed", "error", err)
	}
}
