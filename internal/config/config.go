package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/infoxgentech/AIadcreative/internal/provider/failover"
	"github.com/infoxgentech/AIadcreative/internal/provider/gemini"
	"github.com/infoxgentech/AIadcreative/internal/provider/openai"
	"github.com/infoxgentech/AIadcreative/internal/ratelimit"
)

// Config represents the engine configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	OpenAI    openai.Config
	Gemini    gemini.Config
	Failover  failover.Config
	RateLimit ratelimit.Config
	Redis     RedisConfig
	Store     StoreConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"120"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization,X-Caller-Id"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// RedisConfig contains the optional shared-state backend. When URL is empty
// the in-memory rate limiter is used.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// StoreConfig contains the brand seed source for the in-process store.
type StoreConfig struct {
	BrandSeedFile string `env:"BRAND_SEED_FILE"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	Server    *ServerConfig
	CORS      *CORSConfig
	OpenAI    *openai.Config
	Gemini    *gemini.Config
	Failover  *failover.Config
	RateLimit *ratelimit.Config
	Redis     *RedisConfig
	Store     *StoreConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.OpenAI,
		&cfg.Gemini,
		&cfg.Failover,
		&cfg.RateLimit,
		&cfg.Redis,
		&cfg.Store,
	}
}
