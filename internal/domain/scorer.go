package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/infoxgentech/AIadcreative/internal/observability"
)

// ConsistencyService scores existing content against its brand context. It is
// a thin secondary pipeline over the same failover executor, inheriting its
// retry and circuit-breaking behavior.
type ConsistencyService struct {
	brands    BrandDirectory
	assembler ContextAssembler
	failover  FailoverExecutor
	store     ContentStore
}

// NewConsistencyService creates a new consistency scorer (DI constructor).
func NewConsistencyService(
	brands BrandDirectory,
	assembler ContextAssembler,
	failover FailoverExecutor,
	store ContentStore,
) *ConsistencyService {
	return &ConsistencyService{
		brands:    brands,
		assembler: assembler,
		failover:  failover,
		store:     store,
	}
}

// ScoreContent looks up a stored content piece, scores it against its brand
// and persists the score.
func (s *ConsistencyService) ScoreContent(ctx context.Context, contentID string) (*ConsistencyScore, error) {
	if contentID == "" {
		return nil, &ValidationError{Field: "content_id", Reason: "is required"}
	}

	piece, err := s.store.GetGenerationResult(ctx, contentID)
	if err != nil {
		if errors.Is(err, ErrContentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("content lookup failed: %w", err)
	}

	record, err := s.brands.GetBrand(ctx, piece.BrandID)
	if err != nil {
		return nil, fmt.Errorf("brand lookup failed: %w", err)
	}
	materials, err := s.brands.GetReferenceMaterials(ctx, piece.BrandID)
	if err != nil {
		return nil, fmt.Errorf("reference material lookup failed: %w", err)
	}
	bc, err := s.assembler.Build(record, materials)
	if err != nil {
		return nil, err
	}

	score, err := s.Score(ctx, piece.Content, bc)
	if err != nil {
		return nil, err
	}

	if saveErr := s.store.SaveConsistencyScore(ctx, contentID, score); saveErr != nil {
		return nil, fmt.Errorf("failed to persist consistency score: %w", saveErr)
	}

	return score, nil
}

// Score evaluates a content string against a brand context.
func (s *ConsistencyService) Score(ctx context.Context, content string, bc *BrandContext) (*ConsistencyScore, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Field: "content", Reason: "cannot be empty"}
	}
	if bc == nil {
		return nil, &ValidationError{Field: "brand_context", Reason: "cannot be nil"}
	}

	spec := buildScoringSpec(content, bc)

	var score *ConsistencyScore
	provider, trail, err := s.failover.Execute(ctx, "",
		func(ctx context.Context, adapter ProviderAdapter) error {
			result, scoreErr := adapter.ScoreConsistency(ctx, spec)
			if scoreErr != nil {
				return scoreErr
			}
			score = result
			return nil
		})
	if err != nil {
		return nil, err
	}

	score.Provider = provider
	observability.FromContext(ctx).Info("consistency score produced",
		observability.String("provider", provider),
		observability.Int("score", score.Score),
		observability.Int("attempts", len(trail)))

	return score, nil
}

// buildScoringSpec derives the scoring prompt from the brand context. The
// output-format hint demands a numeric score plus rationale so adapters can
// parse the payload uniformly.
func buildScoringSpec(content string, bc *BrandContext) *PromptSpec {
	var system strings.Builder
	system.WriteString("You are a brand compliance reviewer. Judge how well the supplied content matches the brand guidelines below.\n\n")
	fmt.Fprintf(&system, "Brand: %s\n", bc.Name)
	fmt.Fprintf(&system, "Voice: %s\n", bc.Voice)
	if len(bc.Values) > 0 {
		fmt.Fprintf(&system, "Values: %s\n", strings.Join(bc.Values, ", "))
	}
	if len(bc.MessagingPillars) > 0 {
		fmt.Fprintf(&system, "Messaging pillars: %s\n", strings.Join(bc.MessagingPillars, ", "))
	}
	if len(bc.BannedWords) > 0 {
		fmt.Fprintf(&system, "Words to avoid: %s\n", strings.Join(bc.BannedWords, ", "))
	}

	var user strings.Builder
	user.WriteString("CONTENT TO EVALUATE:\n")
	user.WriteString(content)

	outputFormat := `Respond with a single JSON object:
{
  "overall_score": <integer 0-100>,
  "rationale": "<one paragraph explaining the score>",
  "deviations": [{"attribute": "<brand attribute>", "observation": "<what deviates>"}]
}`

	return &PromptSpec{
		System:       system.String(),
		User:         user.String(),
		OutputFormat: outputFormat,
	}
}
