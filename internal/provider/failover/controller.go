// Package failover holds the provider registry and failover controller: an
// ordered list of adapters, each behind its own circuit breaker, tried
// sequentially until the first success.
package failover

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/observability"
)

// Controller implements domain.FailoverExecutor. The adapter order and maps
// are immutable after construction; all mutable per-provider health state
// lives inside the circuit breakers, which are safe for concurrent use.
type Controller struct {
	cfg      Config
	order    []string
	adapters map[string]domain.ProviderAdapter
	breakers map[string]*gobreaker.CircuitBreaker
	sleep    func(time.Duration)
}

// New creates a failover controller over the given adapters. Adapters are
// tried in cfg.ProviderOrder; registered adapters missing from the configured
// order are appended at the end.
func New(cfg Config, adapters []domain.ProviderAdapter) *Controller {
	byName := make(map[string]domain.ProviderAdapter, len(adapters))
	for _, adapter := range adapters {
		byName[adapter.Name()] = adapter
	}

	order := make([]string, 0, len(adapters))
	seen := make(map[string]bool, len(adapters))
	for _, name := range cfg.ProviderOrder {
		if _, ok := byName[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	for _, adapter := range adapters {
		if !seen[adapter.Name()] {
			order = append(order, adapter.Name())
			seen[adapter.Name()] = true
		}
	}

	breakers := make(map[string]*gobreaker.CircuitBreaker, len(order))
	for _, name := range order {
		breakers[name] = gobreaker.NewCircuitBreaker(breakerSettings(name, cfg))
	}

	return &Controller{
		cfg:      cfg,
		order:    order,
		adapters: byName,
		breakers: breakers,
		sleep:    time.Sleep,
	}
}

// breakerSettings maps the configured threshold and cool-down onto gobreaker:
// the circuit opens after BreakerThreshold consecutive failures, stays open
// for BreakerCooldown seconds, then allows exactly one half-open probe.
func breakerSettings(name string, cfg Config) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     time.Duration(cfg.BreakerCooldown) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.BreakerThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			getLogger().Info("provider circuit state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
}

func getLogger() *zap.Logger {
	return observability.FromContext(context.Background())
}

// Execute iterates adapters in priority order and invokes call on the first
// eligible one, with bounded retries for retryable errors. First success wins;
// no further adapters are tried. A non-empty hint moves that adapter to the
// front for this call only.
func (c *Controller) Execute(
	ctx context.Context,
	hint string,
	call func(ctx context.Context, adapter domain.ProviderAdapter) error,
) (string, []domain.Attempt, error) {
	trail := make([]domain.Attempt, 0, len(c.order)*(c.cfg.MaxRetries+1))

	for _, name := range c.orderFor(hint) {
		adapter := c.adapters[name]
		breaker := c.breakers[name]

		_, err := breaker.Execute(func() (any, error) {
			return nil, c.callWithRetries(ctx, name, adapter, call, &trail)
		})
		if err == nil {
			return name, trail, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			trail = append(trail, domain.Attempt{Provider: name, Outcome: domain.OutcomeCircuitOpen})
			continue
		}
		// Failed attempts were already recorded by callWithRetries; move on
		// to the next adapter.
	}

	return "", trail, &domain.AllProvidersUnavailableError{Trail: trail}
}

// callWithRetries runs the operation against one adapter with exponential
// backoff and jitter, retrying only transient and provider-rate-limited
// failures. Every attempt is recorded in the trail.
func (c *Controller) callWithRetries(
	ctx context.Context,
	name string,
	adapter domain.ProviderAdapter,
	call func(ctx context.Context, adapter domain.ProviderAdapter) error,
	trail *[]domain.Attempt,
) error {
	logger := observability.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(c.backoff(attempt))
			if ctx.Err() != nil {
				return domain.NewTransientError(name, ctx.Err())
			}
		}

		// WithoutCancel lets an in-flight provider call complete when the
		// caller disconnects, so already-spent quota is not wasted. The
		// result is discarded upstream.
		callCtx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx),
			time.Duration(c.cfg.CallTimeout)*time.Second,
		)
		err := call(callCtx, adapter)
		cancel()

		if err == nil {
			*trail = append(*trail, domain.Attempt{Provider: name, Outcome: domain.OutcomeSuccess})
			return nil
		}

		kind := domain.KindOf(err)
		*trail = append(*trail, domain.Attempt{Provider: name, Outcome: string(kind)})
		logger.Warn("provider call failed",
			zap.String("provider", name),
			zap.String("kind", string(kind)),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		lastErr = err
		if !kind.Retryable() {
			return err
		}
	}

	return lastErr
}

// backoff grows exponentially from the base, capped at the max, with up to
// 50% jitter so synchronized retry storms spread out.
func (c *Controller) backoff(attempt int) time.Duration {
	base := time.Duration(c.cfg.BackoffBaseMs) * time.Millisecond
	delay := base << (attempt - 1)

	ceiling := time.Duration(c.cfg.BackoffMaxMs) * time.Millisecond
	if delay > ceiling {
		delay = ceiling
	}

	jitter := time.Duration(rand.Int64N(int64(delay)/2 + 1))
	return delay + jitter
}

// orderFor returns the adapter order for one call, honoring the caller's
// provider hint without mutating the default order.
func (c *Controller) orderFor(hint string) []string {
	if hint == "" {
		return c.order
	}
	if _, ok := c.adapters[hint]; !ok {
		return c.order
	}

	reordered := make([]string, 0, len(c.order))
	reordered = append(reordered, hint)
	for _, name := range c.order {
		if name != hint {
			reordered = append(reordered, name)
		}
	}
	return reordered
}

// Status reports per-adapter circuit state for the status endpoint.
func (c *Controller) Status() []domain.ProviderStatus {
	statuses := make([]domain.ProviderStatus, 0, len(c.order))
	for _, name := range c.order {
		breaker := c.breakers[name]
		statuses = append(statuses, domain.ProviderStatus{
			Name:                name,
			CircuitState:        breaker.State().String(),
			ConsecutiveFailures: int(breaker.Counts().ConsecutiveFailures),
		})
	}
	return statuses
}
