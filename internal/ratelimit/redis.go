package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/observability"
)

// RedisLimiter implements domain.RateLimiter on shared Redis counters so the
// caps hold across replicas. Same contract as MemoryLimiter: minute and hour
// windows, denied calls are not counted.
type RedisLimiter struct {
	client *redis.Client
	cfg    Config
	now    func() time.Time
}

// NewRedisLimiter creates a new Redis-backed rate limiter.
func NewRedisLimiter(client *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		cfg:    cfg,
		now:    time.Now,
	}
}

// CheckAndIncrement increments both window counters, then undoes the
// increments when either cap is exceeded.
func (l *RedisLimiter) CheckAndIncrement(ctx context.Context, callerID string) (domain.RateLimitDecision, error) {
	now := l.now()
	minuteKey := windowKey(callerID, "m", now.Truncate(time.Minute))
	hourKey := windowKey(callerID, "h", now.Truncate(time.Hour))

	var minuteCount, hourCount *redis.IntCmd
	_, err := l.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		minuteCount = pipe.Incr(ctx, minuteKey)
		pipe.Expire(ctx, minuteKey, 2*time.Minute)
		hourCount = pipe.Incr(ctx, hourKey)
		pipe.Expire(ctx, hourKey, 2*time.Hour)
		return nil
	})
	if err != nil {
		return domain.RateLimitDecision{}, fmt.Errorf("rate limit pipeline failed: %w", err)
	}

	if minuteCount.Val() > int64(l.cfg.PerMinute) {
		l.undo(ctx, minuteKey, hourKey)
		return domain.RateLimitDecision{
			Allowed:    false,
			RetryAfter: now.Truncate(time.Minute).Add(time.Minute).Sub(now),
		}, nil
	}
	if hourCount.Val() > int64(l.cfg.PerHour) {
		l.undo(ctx, minuteKey, hourKey)
		return domain.RateLimitDecision{
			Allowed:    false,
			RetryAfter: now.Truncate(time.Hour).Add(time.Hour).Sub(now),
		}, nil
	}

	return domain.RateLimitDecision{Allowed: true}, nil
}

// undo rolls back the speculative increments after a denial so denied calls
// never consume quota.
func (l *RedisLimiter) undo(ctx context.Context, keys ...string) {
	_, err := l.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Decr(ctx, key)
		}
		return nil
	})
	if err != nil {
		observability.FromContext(ctx).Warn("failed to roll back rate limit counters",
			observability.Error(err))
	}
}

func windowKey(callerID, window string, start time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", callerID, window, start.Unix())
}
