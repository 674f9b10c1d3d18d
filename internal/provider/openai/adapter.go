// Package openai adapts the OpenAI API to the domain.ProviderAdapter contract
// using the official SDK. It normalizes authentication, request shape and
// response parsing, and classifies failures for the failover controller.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/observability"
)

const (
	providerName = "openai"

	generateTemperature = 0.7
	generateMaxTokens   = 4000
	scoreTemperature    = 0.3
	scoreMaxTokens      = 1000
)

// Adapter implements domain.ProviderAdapter for OpenAI.
type Adapter struct {
	client openai.Client
	model  string
	name   string
}

// NewAdapter creates a new OpenAI adapter.
func NewAdapter(config Config) (*Adapter, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		// The failover controller owns retries; disable the SDK's.
		option.WithMaxRetries(0),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Adapter{
		client: openai.NewClient(opts...),
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
		observability.FromContext(ctx).Warn("OpenAI scoring payload unparseable",
			observability.String("raw_payload", result.Content),
			observability.Error(err))
		return nil, domain.NewMalformedResponseError(a.name, err)
	}
	return score, nil
}

func (a *Adapter) complete(
	ctx context.Context,
	spec *domain.PromptSpec,
	temperature float64,
	maxTokens int64,
) (*domain.ProviderResult, error) {
	if spec == nil {
		return nil, errors.New("prompt spec cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API")

	start := time.Now()
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemText(spec)),
			openai.UserMessage(spec.User),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return nil, a.classify(err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	if content == "" {
		return nil, domain.NewMalformedResponseError(a.name, errors.New("response contained no content"))
	}

	payload, _ := domain.ExtractJSON(content)

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)))

	return &domain.ProviderResult{
		Provider: a.name,
		Model:    string(resp.Model),
		Content:  content,
		Payload:  payload,
		Usage: domain.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
		Latency: time.Since(start),
	}, nil
}

// classify translates SDK failures into the domain error taxonomy.
func (a *Adapter) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTransientError(a.name, err)
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == http.StatusUnauthorized || apierr.StatusCode == http.StatusForbidden:
			return domain.NewAuthError(a.name, err)
		case apierr.StatusCode == http.StatusTooManyRequests:
			return domain.NewProviderRateLimitedError(a.name, err)
		}
	}

	return domain.NewTransientError(a.name, err)
}

func systemText(spec *domain.PromptSpec) string {
	if spec.OutputFormat == "" {
		return spec.System
	}
	return fmt.Sprintf("%s\n## OUTPUT FORMAT\n%s", spec.System, spec.OutputFormat)
}
