package consultation

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter caps booking submissions per client IP with a fixed window
// counter in redis. It fails open: if redis is unreachable the public
// form keeps working, mirroring how reads degrade when the store is down.
type RateLimiter struct {
	redis  *redis.Client
	max    int64
	window time.Duration
	logger *slog.Logger
}

func NewRateLimiter(client *redis.Client, max int, window time.Duration, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  client,
		max:    int64(max),
		window: window,
		logger: logger,
	}
}

func (rl *RateLimiter) Allow(ctx context.Context, ip string) bool {
	if rl.redis == nil {
		return true
	}

	key := "consultations:rate:" + ip

	pipe := rl.redis.Pipeline()
	count := pipe.Incr(ctx, key)
	// NX keeps the window anchored at the first hit; repeat hits must not
	// push the expiry out.
	pipe.ExpireNX(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.Warn("rate limiter unavailable, allowing request", "error", err)
		return true
	}

	return count.Val() <= rl.max
}
