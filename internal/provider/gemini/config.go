package gemini

// Config contains Google Gemini provider configuration.
type Config struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-pro"`
}
