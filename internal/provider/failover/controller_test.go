package failover //nolint:testpackage // Needs access to the unexported sleep hook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/infoxgentech/AIadcreative/internal/domain"
)

// mockAdapter is a mock implementation of domain.ProviderAdapter.
type mockAdapter struct {
	name         string
	generateFunc func(ctx context.Context, spec *domain.PromptSpec) (*domain.ProviderResult, error)
}

func (m *mockAdapter) Name() string { return m.name }

func (m *mockAdapter) Generate(ctx context.Context, spec *domain.PromptSpec) (*domain.ProviderResult, error) {
	return m.generateFunc(ctx, spec)
}

func (m *mockAdapter) ScoreConsistency(ctx context.Context, spec *domain.PromptSpec) (*domain.ConsistencyScore, error) {
	return nil, errors.New("not implemented")
}

func succeeding(name string) *mockAdapter {
	return &mockAdapter{
		name: name,
		generateFunc: func(_ context.Context, _ *domain.PromptSpec) (*domain.ProviderResult, error) {
			return &domain.ProviderResult{Provider: name, Content: "ok"}, nil
		},
	}
}

func failingWith(name string, err error) *mockAdapter {
	return &mockAdapter{
		name: name,
		generateFunc: func(_ context.Context, _ *domain.PromptSpec) (*domain.ProviderResult, error) {
			return nil, err
		},
	}
}

func testConfig() Config {
	return Config{
		ProviderOrder:    []string{"primary", "fallback"},
		MaxRetries:       2,
		BackoffBaseMs:    1,
		BackoffMaxMs:     4,
		CallTimeout:      5,
		BreakerThreshold: 3,
		BreakerCooldown:  1,
	}
}

func newTestController(cfg Config, adapters ...domain.ProviderAdapter) *Controller {
	controller := New(cfg, adapters)
	controller.sleep = func(time.Duration) {}
	return controller
}

// generateVia is the closure shape the generation service passes to Execute.
func generateVia(result **domain.ProviderResult) func(ctx context.Context, adapter domain.ProviderAdapter) error {
	return func(ctx context.Context, adapter domain.ProviderAdapter) error {
		res, err := adapter.Generate(ctx, &domain.PromptSpec{System: "system", User: "user"})
		if err != nil {
			return err
		}
		*result = res
		return nil
	}
}

func TestController_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the first adapter's result on success", func(t *testing.T) {
		controller := newTestController(testConfig(), succeeding("primary"), succeeding("fallback"))

		var result *domain.ProviderResult
		provider, trail, err := controller.Execute(ctx, "", generateVia(&result))

		require.NoError(t, err)
		require.Equal(t, "primary", provider)
		require.Equal(t, "ok", result.Content)
		require.Equal(t, []domain.Attempt{
			{Provider: "primary", Outcome: domain.OutcomeSuccess},
		}, trail)
	})

	t.Run("should fail over after exhausting retries on transient errors", func(t *testing.T) {
		transient := domain.NewTransientError("primary", errors.New("connection reset"))
		controller := newTestController(testConfig(), failingWith("primary", transient), succeeding("fallback"))

		var result *domain.ProviderResult
		provider, trail, err := controller.Execute(ctx, "", generateVia(&result))

		require.NoError(t, err)
		require.Equal(t, "fallback", provider)
		require.Equal(t, []domain.Attempt{
			{Provider: "primary", Outcome: domain.OutcomeTransientError},
			{Provider: "primary", Outcome: domain.OutcomeTransientError},
			{Provider: "primary", Outcome: domain.OutcomeTransientError},
			{Provider: "fallback", Outcome: domain.OutcomeSuccess},
		}, trail)
	})

	t.Run("should fail over immediately on auth errors without retrying", func(t *testing.T) {
		authErr := domain.NewAuthError("primary", errors.New("invalid api key"))
		controller := newTestController(testConfig(), failingWith("primary", authErr), succeeding("fallback"))

		var result *domain.ProviderResult
		provider, trail, err := controller.Execute(ctx, "", generateVia(&result))

		require.NoError(t, err)
		require.Equal(t, "fallback", provider)
		require.Equal(t, []domain.Attempt{
			{Provider: "primary", Outcome: domain.OutcomeAuthError},
			{Provider: "fallback", Outcome: domain.OutcomeSuccess},
		}, trail)
	})

	t.Run("should fail over immediately on malformed responses without retrying", func(t *testing.T) {
		malformed := domain.NewMalformedResponseError("primary", errors.New("no JSON in payload"))
		controller := newTestController(testConfig(), failingWith("primary", malformed), succeeding("fallback"))

		var result *domain.ProviderResult
		provider, trail, err := controller.Execute(ctx, "", generateVia(&result))

		require.NoError(t, err)
		require.Equal(t, "fallback", provider)
		require.Equal(t, []domain.Attempt{
			{Provider: "primary", Outcome: domain.OutcomeMalformedResponse},
			{Provider: "fallback", Outcome: domain.OutcomeSuccess},
		}, trail)
	})

	t.Run("should return the full trail when every adapter is exhausted", func(t *testing.T) {
		primaryErr := domain.NewAuthError("primary", errors.New("invalid api key"))
		fallbackErr := domain.NewAuthError("fallback", errors.New("invalid api key"))
		controller := newTestController(testConfig(),
			failingWith("primary", primaryErr),
			failingWith("fallback", fallbackErr),
		)

		var result *domain.ProviderResult
		provider, trail, err := controller.Execute(ctx, "", generateVia(&result))

		require.Error(t, err)
		require.Empty(t, provider)
		require.Nil(t, result)

		var unavailable *domain.AllProvidersUnavailableError
		require.ErrorAs(t, err, &unavailable)
		require.Equal(t, []domain.Attempt{
			{Provider: "primary", Outcome: domain.OutcomeAuthError},
			{Provider: "fallback", Outcome: domain.OutcomeAuthError},
		}, unavailable.Trail)
		require.Equal(t, trail, unavailable.Trail)
	})

	t.Run("should move the hinted adapter to the front for one call only", func(t *testing.T) {
		controller := newTestController(testConfig(), succeeding("primary"), succeeding("fallback"))

		var result *domain.ProviderResult
		provider, _, err := controller.Execute(ctx, "fallback", generateVia(&result))
		require.NoError(t, err)
		require.Equal(t, "fallback", provider)

		// Without a hint the default order applies again.
		provider, _, err = controller.Execute(ctx, "", generateVia(&result))
		require.NoError(t, err)
		require.Equal(t, "primary", provider)
	})

	t.Run("should ignore a hint that names an unregistered adapter", func(t *testing.T) {
		controller := newTestController(testConfig(), succeeding("primary"), succeeding("fallback"))

		var result *domain.ProviderResult
		provider, _, err := controller.Execute(ctx, "nonexistent", generateVia(&result))
		require.NoError(t, err)
		require.Equal(t, "primary", provider)
	})
}

func TestController_CircuitBreaker(t *testing.T) {
	ctx := context.Background()

	// Retries off so each Execute is exactly one breaker failure.
	cfg := testConfig()
	cfg.MaxRetries = 0

	t.Run("should skip an adapter once its circuit opens", func(t *testing.T) {
		transient := domain.NewTransientError("primary", errors.New("connection reset"))
		controller := newTestController(cfg, failingWith("primary", transient), succeeding("fallback"))

		var result *domain.ProviderResult
		for i := 0; i < 3; i++ {
			provider, _, err := controller.Execute(ctx, "", generateVia(&result))
			require.NoError(t, err)
			require.Equal(t, "fallback", provider)
		}

		// Threshold reached: the next call must not touch the primary adapter.
		_, trail, err := controller.Execute(ctx, "", generateVia(&result))
		require.NoError(t, err)
		require.Equal(t, []domain.Attempt{
			{Provider: "primary", Outcome: domain.OutcomeCircuitOpen},
			{Provider: "fallback", Outcome: domain.OutcomeSuccess},
		}, trail)

		statuses := controller.Status()
		require.Equal(t, "primary", statuses[0].Name)
		require.Equal(t, "open", statuses[0].CircuitState)
	})

	t.Run("should close the circuit after a successful half-open probe", func(t *testing.T) {
		calls := 0
		flaky := &mockAdapter{
			name: "primary",
			generateFunc: func(_ context.Context, _ *domain.PromptSpec) (*domain.ProviderResult, error) {
				calls++
				if calls <= 3 {
					return nil, domain.NewTransientError("primary", errors.New("connection reset"))
				}
				return &domain.ProviderResult{Provider: "primary", Content: "ok"}, nil
			},
		}
		controller := newTestController(cfg, flaky, succeeding("fallback"))

		var result *domain.ProviderResult
		for i := 0; i < 3; i++ {
			_, _, err := controller.Execute(ctx, "", generateVia(&result))
			require.NoError(t, err)
		}
		require.Equal(t, "open", controller.Status()[0].CircuitState)

		// After the cool-down the breaker admits a single probe, which succeeds
		// and closes the circuit.
		time.Sleep(1100 * time.Millisecond)
		provider, trail, err := controller.Execute(ctx, "", generateVia(&result))
		require.NoError(t, err)
		require.Equal(t, "primary", provider)
		require.Equal(t, []domain.Attempt{
			{Provider: "primary", Outcome: domain.OutcomeSuccess},
		}, trail)
		require.Equal(t, "closed", controller.Status()[0].CircuitState)
	})

	t.Run("should reopen the circuit when the half-open probe fails", func(t *testing.T) {
		transient := domain.NewTransientError("primary", errors.New("connection reset"))
		controller := newTestController(cfg, failingWith("primary", transient), succeeding("fallback"))

		var result *domain.ProviderResult
		for i := 0; i < 3; i++ {
			_, _, err := controller.Execute(ctx, "", generateVia(&result))
			require.NoError(t, err)
		}
		require.Equal(t, "open", controller.Status()[0].CircuitState)

		time.Sleep(1100 * time.Millisecond)
		_, trail, err := controller.Execute(ctx, "", generateVia(&result))
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeTransientError, trail[0].Outcome)

		// The failed probe re-opens the circuit; the following call skips.
		_, trail, err = controller.Execute(ctx, "", generateVia(&result))
		require.NoError(t, err)
		require.Equal(t, []domain.Attempt{
			{Provider: "primary", Outcome: domain.OutcomeCircuitOpen},
			{Provider: "fallback", Outcome: domain.OutcomeSuccess},
		}, trail)
	})
}

func TestController_Status(t *testing.T) {
	t.Run("should report closed circuits with zero failures initially", func(t *testing.T) {
		controller := newTestController(testConfig(), succeeding("primary"), succeeding("fallback"))

		statuses := controller.Status()
		require.Len(t, statuses, 2)
		require.Equal(t, "primary", statuses[0].Name)
		require.Equal(t, "fallback", statuses[1].Name)
		for _, status := range statuses {
			require.Equal(t, "closed", status.CircuitState)
			require.Zero(t, status.ConsecutiveFailures)
		}
	})

	t.Run("should append adapters missing from the configured order", func(t *testing.T) {
		cfg := testConfig()
		cfg.ProviderOrder = []string{"fallback"}
		controller := newTestController(cfg, succeeding("primary"), succeeding("fallback"))

		statuses := controller.Status()
		require.Len(t, statuses, 2)
		require.Equal(t, "fallback", statuses[0].Name)
		require.Equal(t, "primary", statuses[1].Name)
	})
}
