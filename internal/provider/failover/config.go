package failover

// Config contains failover and circuit-breaker settings. Durations are in
// seconds or milliseconds as named, matching the rest of the env surface.
type Config struct {
	ProviderOrder    []string `env:"PROVIDER_ORDER"             envSeparator:"," envDefault:"openai,gemini"`
	MaxRetries       int      `env:"FAILOVER_MAX_RETRIES"       envDefault:"2"`
	BackoffBaseMs    int      `env:"FAILOVER_BACKOFF_BASE_MS"   envDefault:"250"`
	BackoffMaxMs     int      `env:"FAILOVER_BACKOFF_MAX_MS"    envDefault:"4000"`
	CallTimeout      int      `env:"PROVIDER_CALL_TIMEOUT"      envDefault:"60"`
	BreakerThreshold int      `env:"BREAKER_FAILURE_THRESHOLD"  envDefault:"3"`
	BreakerCooldown  int      `env:"BREAKER_COOLDOWN"           envDefault:"30"`
}
