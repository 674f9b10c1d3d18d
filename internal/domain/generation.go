package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/infoxgentech/AIadcreative/internal/observability"
)

// GenerationService is the top-level orchestrator: it validates the request,
// enforces the caller's rate limit, assembles brand context, builds the prompt
// and routes the generation call through the failover executor.
type GenerationService struct {
	limiter   RateLimiter
	brands    BrandDirectory
	assembler ContextAssembler
	prompts   PromptBuilder
	failover  FailoverExecutor
	store     ContentStore
}

// NewGenerationService creates a new generation service (DI constructor).
func NewGenerationService(
	limiter RateLimiter,
	brands BrandDirectory,
	assembler ContextAssembler,
	prompts PromptBuilder,
	failover FailoverExecutor,
	store ContentStore,
) *GenerationService {
	return &GenerationService{
		limiter:   limiter,
		brands:    brands,
		assembler: assembler,
		prompts:   prompts,
		failover:  failover,
		store:     store,
	}
}

// GenerateContent handles one generation request end to end. Any failure
// before the provider call is returned immediately without consuming a
// provider call or a further rate-limit slot.
func (s *GenerationService) GenerateContent(ctx context.Context, req *GenerationRequest) (*GenerationResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ctx = observability.WithCallerID(ctx, req.CallerID)
	ctx = observability.WithBrandID(ctx, req.BrandID)
	ctx = observability.WithContentType(ctx, string(req.ContentType))
	logger := observability.FromContext(ctx)

	decision, err := s.limiter.CheckAndIncrement(ctx, req.CallerID)
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !decision.Allowed {
		logger.Warn("request rate limited",
			observability.Duration("retry_after", decision.RetryAfter))
		return nil, &RateLimitedError{RetryAfter: decision.RetryAfter}
	}

	bc, err := s.resolveBrandContext(ctx, req.BrandID)
	if err != nil {
		return nil, err
	}

	spec, err := s.prompts.Build(req, bc)
	if err != nil {
		return nil, err
	}

	var result *ProviderResult
	provider, trail, err := s.failover.Execute(ctx, req.PreferredProvider,
		func(ctx context.Context, adapter ProviderAdapter) error {
			r, genErr := adapter.Generate(ctx, spec)
			if genErr != nil {
				return genErr
			}
			result = r
			return nil
		})
	if err != nil {
		logger.Error("generation failed on all providers",
			observability.Int("attempts", len(trail)),
			observability.Error(err))
		return nil, err
	}

	// Caller gone: the provider call was allowed to finish, but the result is
	// discarded and nothing is persisted.
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Warn("caller cancelled, discarding generation result")
		return nil, ctxErr
	}

	generation := &GenerationResult{
		ID:        uuid.New().String(),
		BrandID:   req.BrandID,
		Provider:  provider,
		Model:     result.Model,
		Content:   result.Content,
		Payload:   result.Payload,
		Usage:     result.Usage,
		Attempts:  trail,
		CreatedAt: time.Now().UTC(),
	}

	if _, saveErr := s.store.SaveGenerationResult(ctx, generation); saveErr != nil {
		return nil, fmt.Errorf("failed to persist generation result: %w", saveErr)
	}

	logger.Info("generation succeeded",
		observability.String("provider", provider),
		observability.String("result_id", generation.ID),
		observability.Int("attempts", len(trail)),
		observability.Int("tokens", result.Usage.TotalTokens))

	return generation, nil
}

// resolveBrandContext fetches the brand and its reference materials and runs
// the context assembler.
func (s *GenerationService) resolveBrandContext(ctx context.Context, brandID string) (*BrandContext, error) {
	record, err := s.brands.GetBrand(ctx, brandID)
	if err != nil {
		if errors.Is(err, ErrBrandNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("brand lookup failed: %w", err)
	}

	materials, err := s.brands.GetReferenceMaterials(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("reference material lookup failed: %w", err)
	}

	return s.assembler.Build(record, materials)
}

func validateRequest(req *GenerationRequest) error {
	if req == nil {
		return &ValidationError{Field: "request", Reason: "cannot be nil"}
	}
	if req.CallerID == "" {
		return &ValidationError{Field: "caller_id", Reason: "is required"}
	}
	if req.BrandID == "" {
		return &ValidationError{Field: "brand_id", Reason: "is required"}
	}
	if !req.ContentType.IsValid() {
		return &ValidationError{Field: "content_type", Reason: fmt.Sprintf("%q is not a supported content type", req.ContentType)}
	}
	if req.Platform == "" {
		req.Platform = PlatformCustom
	}
	if !req.Platform.IsValid() {
		return &ValidationError{Field: "platform", Reason: fmt.Sprintf("%q is not a supported platform", req.Platform)}
	}
	if strings.TrimSpace(req.Brief) == "" {
		return &ValidationError{Field: "brief", Reason: "cannot be empty"}
	}
	return nil
}
