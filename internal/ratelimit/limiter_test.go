package ratelimit //nolint:testpackage // Needs access to the unexported clock for deterministic windows

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestLimiter(cfg Config, at time.Time) (*MemoryLimiter, *time.Time) {
	current := at
	limiter := NewMemoryLimiter(cfg)
	limiter.now = func() time.Time { return current }
	return limiter, &current
}

func TestMemoryLimiter_CheckAndIncrement(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should allow requests under the cap", func(t *testing.T) {
		limiter, _ := newTestLimiter(Config{PerMinute: 5, PerHour: 100}, start)

		for i := 0; i < 5; i++ {
			decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
			require.NoError(t, err)
			require.True(t, decision.Allowed)
		}
	})

	t.Run("should deny the 61st request in a minute with retry-after at most 60s", func(t *testing.T) {
		limiter, _ := newTestLimiter(Config{PerMinute: 60, PerHour: 1000}, start)

		for i := 0; i < 60; i++ {
			decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
			require.NoError(t, err)
			require.True(t, decision.Allowed)
		}

		decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
		require.NoError(t, err)
		require.False(t, decision.Allowed)
		require.Positive(t, decision.RetryAfter)
		require.LessOrEqual(t, decision.RetryAfter, time.Minute)
	})

	t.Run("should not count denied requests", func(t *testing.T) {
		limiter, current := newTestLimiter(Config{PerMinute: 2, PerHour: 1000}, start)

		for i := 0; i < 2; i++ {
			decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
			require.NoError(t, err)
			require.True(t, decision.Allowed)
		}
		for i := 0; i < 10; i++ {
			decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
			require.NoError(t, err)
			require.False(t, decision.Allowed)
		}

		// After the minute window resets, the full cap is available again:
		// the denied calls consumed nothing.
		*current = start.Add(61 * time.Second)
		for i := 0; i < 2; i++ {
			decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
			require.NoError(t, err)
			require.True(t, decision.Allowed)
		}
	})

	t.Run("should enforce the hourly cap across minute windows", func(t *testing.T) {
		limiter, current := newTestLimiter(Config{PerMinute: 3, PerHour: 4}, start)

		for i := 0; i < 3; i++ {
			decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
			require.NoError(t, err)
			require.True(t, decision.Allowed)
		}

		*current = start.Add(2 * time.Minute)
		decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
		require.NoError(t, err)
		require.True(t, decision.Allowed)

		decision, err = limiter.CheckAndIncrement(ctx, "caller-1")
		require.NoError(t, err)
		require.False(t, decision.Allowed)
		require.Positive(t, decision.RetryAfter)
		require.LessOrEqual(t, decision.RetryAfter, time.Hour)
	})

	t.Run("should isolate callers", func(t *testing.T) {
		limiter, _ := newTestLimiter(Config{PerMinute: 1, PerHour: 100}, start)

		decision, err := limiter.CheckAndIncrement(ctx, "caller-1")
		require.NoError(t, err)
		require.True(t, decision.Allowed)

		decision, err = limiter.CheckAndIncrement(ctx, "caller-1")
		require.NoError(t, err)
		require.False(t, decision.Allowed)

		decision, err = limiter.CheckAndIncrement(ctx, "caller-2")
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	})

	t.Run("should keep check-then-increment atomic under concurrent callers", func(t *testing.T) {
		limiter, _ := newTestLimiter(Config{PerMinute: 50, PerHour: 1000}, start)

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				decision, err := limiter.CheckAndIncrement(ctx, "shared-caller")
				require.NoError(t, err)
				if decision.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 50, allowed)
	})
}
