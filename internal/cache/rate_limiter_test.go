package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, limit, window), m
}

func TestAllowWithinLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)

	for i := 0; i < 2; i++ {
		allowed, retryAfter, err := limiter.Allow(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
	}
}

func TestAllowDeniesOverLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)

	for i := 0; i < 2; i++ {
		_, _, err := limiter.Allow(context.Background(), 1)
		require.NoError(t, err)
	}

	allowed, retryAfter, err := limiter.Allow(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestAllowCounterAlwaysCarriesTTL(t *testing.T) {
	limiter, m := newTestLimiter(t, 5, time.Minute)

	_, _, err := limiter.Allow(context.Background(), 7)
	require.NoError(t, err)

	// The first increment must leave a TTL behind; a counter without one
	// would rate-limit the user forever.
	assert.Greater(t, m.TTL("ratelimit:ai:7"), time.Duration(0))
}

func TestAllowWindowResetsAfterExpiry(t *testing.T) {
	limiter, m := newTestLimiter(t, 1, time.Minute)

	allowed, _, err := limiter.Allow(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = limiter.Allow(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, allowed)

	m.FastForward(2 * time.Minute)

	allowed, _, err = limiter.Allow(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllowIsolatesUsers(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)

	allowed, _, err := limiter.Allow(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = limiter.Allow(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, allowed)
}
