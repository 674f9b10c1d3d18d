package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/infoxgentech/AIadcreative/internal/brand"
	"github.com/infoxgentech/AIadcreative/internal/config"
	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/http"
	"github.com/infoxgentech/AIadcreative/internal/observability"
	"github.com/infoxgentech/AIadcreative/internal/prompt"
	"github.com/infoxgentech/AIadcreative/internal/provider/echo"
	"github.com/infoxgentech/AIadcreative/internal/provider/failover"
	"github.com/infoxgentech/AIadcreative/internal/provider/gemini"
	"github.com/infoxgentech/AIadcreative/internal/provider/openai"
	"github.com/infoxgentech/AIadcreative/internal/ratelimit"
	"github.com/infoxgentech/AIadcreative/internal/store"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	provide := func(constructor any) {
		if err := container.Provide(constructor); err != nil {
			log.Fatalf("Failed to build container: %v", err)
		}
	}

	// Configuration
	provide(config.Load)
	provide(config.ParseDependenciesConfig)

	// Observability
	provide(observability.InitLogger)

	// Provider adapters
	provide(buildAdapters)

	// Failover controller
	provide(func(cfg *failover.Config, adapters []domain.ProviderAdapter) domain.FailoverExecutor {
		return failover.New(*cfg, adapters)
	})

	// Rate limiter (Redis-backed when REDIS_URL is set)
	provide(buildRateLimiter)

	// Brand/content store stand-ins
	provide(buildStore)
	provide(func(m *store.Memory) domain.BrandDirectory { return m })
	provide(func(m *store.Memory) domain.ContentStore { return m })

	// Context assembler and prompt builder
	provide(func() domain.ContextAssembler { return brand.NewAssembler() })
	provide(func() domain.PromptBuilder { return prompt.NewBuilder() })

	// Domain services
	provide(domain.NewGenerationService)
	provide(domain.NewConsistencyService)

	// HTTP layer
	provide(http.NewHandler)
	provide(http.NewServer)

	return container
}

// buildAdapters constructs every configured provider adapter. When no real
// provider key is present the deterministic echo adapter keeps the engine
// usable for development.
func buildAdapters(cfg *config.Config) ([]domain.ProviderAdapter, error) {
	ctx := context.Background()

	var adapters []domain.ProviderAdapter

	if cfg.OpenAI.APIKey != "" {
		adapter, err := openai.NewAdapter(cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI adapter: %w", err)
		}
		adapters = append(adapters, adapter)
	}

	if cfg.Gemini.APIKey != "" {
		adapter, err := gemini.NewAdapter(ctx, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini adapter: %w", err)
		}
		adapters = append(adapters, adapter)
	}

	if len(adapters) == 0 {
		log.Println("no AI provider configured, falling back to echo adapter")
		adapters = append(adapters, echo.NewAdapter())
	}

	return adapters, nil
}

func buildRateLimiter(redisCfg *config.RedisConfig, rlCfg *ratelimit.Config) (domain.RateLimiter, error) {
	if redisCfg.URL != "" {
		opts, err := redis.ParseURL(redisCfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return ratelimit.NewRedisLimiter(redis.NewClient(opts), *rlCfg), nil
	}
	return ratelimit.NewMemoryLimiter(*rlCfg), nil
}

func buildStore(storeCfg *config.StoreConfig) (*store.Memory, error) {
	m := store.NewMemory()
	if storeCfg.BrandSeedFile != "" {
		if err := m.SeedFromFile(storeCfg.BrandSeedFile); err != nil {
			return nil, err
		}
	}
	return m, nil
}
