package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// incrWithExpire bumps the window counter and attaches the TTL in the same
// round trip. Doing both in one script means a counter key can never be left
// behind without an expiry.
var incrWithExpire = redisv9.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimiter enforces a fixed-window per-user cap on the endpoints that call
// paid external providers. State lives in Redis so all instances share one
// budget.
type RateLimiter struct {
	client *redisv9.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redisv9.Client, limitPerWindow int, window time.Duration) *RateLimiter {
	if limitPerWindow <= 0 {
		limitPerWindow = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		client: client,
		limit:  limitPerWindow,
		window: window,
	}
}

// Allow reports whether the user may make another call in the current window
// and, when denied, how long until the window resets.
func (l *RateLimiter) Allow(ctx context.Context, userID uint) (bool, time.Duration, error) {
	key := l.key(userID)

	count, err := incrWithExpire.Run(ctx, l.client, []string{key}, int(l.window.Seconds())).Int64()
	if err != nil {
		return false, 0, fmt.Errorf("redis incr rate limit failed: %w", err)
	}
	if count <= int64(l.limit) {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return false, ttl, nil
}

func (l *RateLimiter) key(userID uint) string {
	return fmt.Sprintf("ratelimit:ai:%d", userID)
}
