// Package ratelimit enforces per-caller request quotas over minute and hour
// windows. Counters are not persisted: they may reset on process restart.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/infoxgentech/AIadcreative/internal/domain"
)

// Config holds the window caps.
type Config struct {
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	PerHour   int `env:"RATE_LIMIT_PER_HOUR"   envDefault:"1000"`
}

// callerWindows tracks one caller's minute and hour windows. Each window is
// a start timestamp plus a count; an expired window is reset on the next call.
type callerWindows struct {
	mu          sync.Mutex
	minuteStart time.Time
	minuteCount int
	hourStart   time.Time
	hourCount   int
}

// MemoryLimiter implements domain.RateLimiter with in-process counters.
// The per-caller mutex makes check-then-increment atomic for concurrent calls
// sharing a caller ID without serializing unrelated callers.
type MemoryLimiter struct {
	mu      sync.Mutex
	callers map[string]*callerWindows
	cfg     Config
	now     func() time.Time
}

// NewMemoryLimiter creates a new in-memory rate limiter (DI constructor).
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		callers: make(map[string]*callerWindows),
		cfg:     cfg,
		now:     time.Now,
	}
}

// CheckAndIncrement prunes expired windows, then either increments both
// windows and allows the call, or denies it with the time remaining until the
// tighter window resets. Denied calls are not counted.
func (l *MemoryLimiter) CheckAndIncrement(_ context.Context, callerID string) (domain.RateLimitDecision, error) {
	caller := l.caller(callerID)

	caller.mu.Lock()
	defer caller.mu.Unlock()

	now := l.now()

	if now.Sub(caller.minuteStart) >= time.Minute {
		caller.minuteStart = now
		caller.minuteCount = 0
	}
	if now.Sub(caller.hourStart) >= time.Hour {
		caller.hourStart = now
		caller.hourCount = 0
	}

	if caller.minuteCount >= l.cfg.PerMinute {
		return domain.RateLimitDecision{
			Allowed:    false,
			RetryAfter: caller.minuteStart.Add(time.Minute).Sub(now),
		}, nil
	}
	if caller.hourCount >= l.cfg.PerHour {
		return domain.RateLimitDecision{
			Allowed:    false,
			RetryAfter: caller.hourStart.Add(time.Hour).Sub(now),
		}, nil
	}

	caller.minuteCount++
	caller.hourCount++

	return domain.RateLimitDecision{Allowed: true}, nil
}

func (l *MemoryLimiter) caller(callerID string) *callerWindows {
	l.mu.Lock()
	defer l.mu.Unlock()

	caller, exists := l.callers[callerID]
	if !exists {
		caller = &callerWindows{}
		l.callers[callerID] = caller
	}
	return caller
}
