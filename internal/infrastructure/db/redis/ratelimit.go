package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindow increments the counter for KEYS[1] and starts its window on
// the first hit. Returns {count, remaining window in ms}.
var fixedWindow = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return { count, ttl }
`)

// RateLimiter allows at most limit hits per key within each window.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRateLimiter creates a fixed-window limiter whose keys start with prefix.
func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow records a hit for key. When the limit is exceeded it returns false
// and the time until the window resets.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	vals, err := fixedWindow.Run(ctx, l.client, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return true, 0, fmt.Errorf("rate limit: %w", err)
	}
	if len(vals) != 2 {
		return true, 0, fmt.Errorf("rate limit: unexpected script result %v", vals)
	}
	if vals[0] <= int64(l.limit) {
		return true, 0, nil
	}
	retry := time.Duration(vals[1]) * time.Millisecond
	if retry < 0 {
		retry = l.window
	}
	return false, retry, nil
}

// Limit is the number of hits allowed per window.
func (l *RateLimiter) Limit() int { return l.limit }
