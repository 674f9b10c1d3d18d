// Package gemini adapts the Google Gemini API to the domain.ProviderAdapter
// contract using the official genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/observability"
)

const (
	providerName = "gemini"

	generateTemperature float32 = 0.7
	generateMaxTokens   int32   = 4000
	scoreTemperature    float32 = 0.3
	scoreMaxTokens      int32   = 1000
)

// Adapter implements domain.ProviderAdapter for Gemini.
type Adapter struct {
	client *genai.Client
	model  string
	name   string
}

// NewAdapter creates a new Gemini adapter.
func NewAdapter(ctx context.Context, config Config) (*Adapter, error) {
	if config.APIKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Adapter{
		client: client,
		model:  config.Model,
		name:   providerName,
	}, nil
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return a.name
}

// Generate produces content for a prompt spec.
func (a *Adapter) Generate(ctx context.Context, spec *domain.PromptSpec) (*domain.ProviderResult, error) {
	return a.complete(ctx, spec, generateTemperature, generateMaxTokens)
}

// ScoreConsistency runs a scoring prompt and parses the numeric payload.
func (a *Adapter) ScoreConsistency(ctx context.Context, spec *domain.PromptSpec) (*domain.ConsistencyScore, error) {
	result, err := a.complete(ctx, spec, scoreTemperature, scoreMaxTokens)
	if err != nil {
		return nil, err
	}

	score, err := domain.ParseConsistencyScore(result.Content)
	if err != nil {
		observability.FromContext(ctx).Warn("Gemini scoring payload unparseable",
			observability.String("raw_payload", result.Content),
			observability.Error(err))
		return nil, domain.NewMalformedResponseError(a.name, err)
	}
	return score, nil
}

func (a *Adapter) complete(
	ctx context.Context,
	spec *domain.PromptSpec,
	temperature float32,
	maxTokens int32,
) (*domain.ProviderResult, error) {
	if spec == nil {
		return nil, errors.New("prompt spec cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini API")

	system := spec.System
	if spec.OutputFormat != "" {
		system = fmt.Sprintf("%s\n## OUTPUT FORMAT\n%s", spec.System, spec.OutputFormat)
	}

	start := time.Now()
	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		genai.Text(spec.User),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       genai.Ptr(temperature),
			MaxOutputTokens:   maxTokens,
		})
	if err != nil {
		logger.Error("Gemini API call failed", observability.Error(err))
		return nil, a.classify(err)
	}

	content := resp.Text()
	if content == "" {
		return nil, domain.NewMalformedResponseError(a.name, errors.New("response contained no content"))
	}

	payload, _ := domain.ExtractJSON(content)

	usage := domain.Usage{}
	if resp.UsageMetadata != nil {
		usage = domain.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	logger.Debug("Gemini API call succeeded",
		observability.Int("total_tokens", usage.TotalTokens))

	return &domain.ProviderResult{
		Provider: a.name,
		Model:    a.model,
		Content:  content,
		Payload:  payload,
		Usage:    usage,
		Latency:  time.Since(start),
	}, nil
}

// classify translates SDK failures into the domain error taxonomy.
func (a *Adapter) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTransientError(a.name, err)
	}

	var apierr genai.APIError
	if errors.As(err, &apierr) {
		switch {
		case apierr.Code == http.StatusUnauthorized || apierr.Code == http.StatusForbidden:
			return domain.NewAuthError(a.name, err)
		case apierr.Code == http.StatusTooManyRequests:
			return domain.NewProviderRateLimitedError(a.name, err)
		}
	}

	return domain.NewTransientError(a.name, err)
}
