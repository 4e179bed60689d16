//go:build integration

package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsel/internal/domain"
	"counsel/internal/platform/redis"
	id "counsel/pkg/domain"
	"counsel/pkg/testutil/containers"
)

func newIntegrationCache(t *testing.T, ttl time.Duration) (*Cache, *containers.RedisContainer) {
	t.Helper()
	rc := containers.NewRedisContainer(t)
	client := &redis.Client{Client: rc.Client}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(client, ttl, logger), rc
}

func cachedResult() *domain.Result {
	return &domain.Result{
		ID:         id.NewAdviceID(),
		Confidence: 0.8,
		Recommendations: []domain.Recommendation{{
			ID:         id.NewRecommendationID(),
			Type:       domain.TypeOptimization,
			Title:      "Profile before optimizing",
			Confidence: 0.8,
			Impact:     domain.ImpactHigh,
			Urgency:    domain.UrgencyMedium,
			Category:   "optimization",
		}},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newIntegrationCache(t, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "fingerprint")
	assert.False(t, ok, "empty cache misses")

	want := cachedResult()
	c.Set(ctx, "fingerprint", want)

	got, ok := c.Get(ctx, "fingerprint")
	require.True(t, ok)
	assert.Equal(t, want.ID, got.ID)
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, want.Recommendations[0].Title, got.Recommendations[0].Title)
}

func TestCacheEntriesExpire(t *testing.T) {
	c, _ := newIntegrationCache(t, time.Second)
	ctx := context.Background()

	c.Set(ctx, "short-lived", cachedResult())
	_, ok := c.Get(ctx, "short-lived")
	require.True(t, ok)

	require.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "short-lived")
		return !ok
	}, 5*time.Second, 100*time.Millisecond, "entry should expire with its TTL")
}

func TestCacheIgnoresCorruptEntries(t *testing.T) {
	c, rc := newIntegrationCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, rc.Client.Set(ctx, "counsel:advise:corrupt", "not-json", time.Minute).Err())

	_, ok := c.Get(ctx, "corrupt")
	assert.False(t, ok, "corrupt entries are treated as misses")
}
