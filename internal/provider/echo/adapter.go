// Package echo provides a deterministic in-process adapter that fabricates
// responses without external API calls. It is used for development and as the
// last-resort wiring when no real provider key is configured.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/observability"
)

const (
	providerName = "echo"
	modelName    = "echo-1"
)

// Adapter implements domain.ProviderAdapter without network access.
type Adapter struct {
	name string
}

// NewAdapter creates a new echo adapter. No configuration is required.
func NewAdapter() *Adapter {
	return &Adapter{name: providerName}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return a.name
}

// Generate fabricates a deterministic JSON payload that echoes the brief.
func (a *Adapter) Generate(ctx context.Context, spec *domain.PromptSpec) (*domain.ProviderResult, error) {
	if spec == nil {
		return nil, errors.New("prompt spec cannot be nil")
	}

	observability.FromContext(ctx).Debug("echoing generation request")

	content := fmt.Sprintf(`{"main_text": %q, "call_to_action": "Learn more"}`, firstLine(spec.User))
	payload, _ := domain.ExtractJSON(content)

	tokens := countTokens(spec.System) + countTokens(spec.User)
	return &domain.ProviderResult{
		Provider: a.name,
		Model:    modelName,
		Content:  content,
		Payload:  payload,
		Usage: domain.Usage{
			PromptTokens:     tokens,
			CompletionTokens: countTokens(content),
			TotalTokens:      tokens + countTokens(content),
		},
		Latency: time.Millisecond,
	}, nil
}

// ScoreConsistency returns a fixed passing score through the shared parser so
// the scoring path is exercised end to end.
func (a *Adapter) ScoreConsistency(ctx context.Context, spec *domain.PromptSpec) (*domain.ConsistencyScore, error) {
	if spec == nil {
		return nil, errors.New("prompt spec cannot be nil")
	}

	observability.FromContext(ctx).Debug("echoing scoring request")

	payload := `{"overall_score": 80, "rationale": "echo adapter: content accepted without analysis"}`
	score, err := domain.ParseConsistencyScore(payload)
	if err != nil {
		return nil, domain.NewMalformedResponseError(a.name, err)
	}
	return score, nil
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "---") {
			return trimmed
		}
	}
	return text
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	return len(strings.Fields(content))
}
