package domain

import "context"

// ProviderAdapter normalizes one AI backend's authentication, request shape
// and response parsing into the common contract.
type ProviderAdapter interface {
	// Name returns the provider identifier.
	Name() string

	// Generate produces content for a prompt spec.
	Generate(ctx context.Context, spec *PromptSpec) (*ProviderResult, error)

	// ScoreConsistency evaluates content against a brand via a scoring prompt.
	ScoreConsistency(ctx context.Context, spec *PromptSpec) (*ConsistencyScore, error)
}

// FailoverExecutor runs an operation against the ordered adapter list with
// retries and circuit breaking. The call closure is invoked once per eligible
// adapter attempt; the first success wins.
type FailoverExecutor interface {
	// Execute returns the winning provider name and the full attempt trail.
	// A non-empty hint reorders the adapter list for this call only.
	Execute(ctx context.Context, hint string, call func(ctx context.Context, adapter ProviderAdapter) error) (string, []Attempt, error)

	// Status reports per-adapter circuit state.
	Status() []ProviderStatus
}

// RateLimiter enforces per-caller request quotas. The check-then-increment
// sequence is atomic with respect to other calls for the same caller.
type RateLimiter interface {
	CheckAndIncrement(ctx context.Context, callerID string) (RateLimitDecision, error)
}

// ContextAssembler builds an immutable BrandContext from externally supplied
// brand and reference-material records.
type ContextAssembler interface {
	Build(record *BrandRecord, materials []ReferenceMaterialRecord) (*BrandContext, error)
}

// PromptBuilder turns a request plus brand context into a provider-agnostic
// prompt spec. Deterministic given identical inputs.
type PromptBuilder interface {
	Build(req *GenerationRequest, bc *BrandContext) (*PromptSpec, error)
}

// BrandDirectory is the external brand/reference-material lookup collaborator.
type BrandDirectory interface {
	GetBrand(ctx context.Context, brandID string) (*BrandRecord, error)
	GetReferenceMaterials(ctx context.Context, brandID string) ([]ReferenceMaterialRecord, error)
}

// ContentStore is the external persistence collaborator for generated content
// and consistency scores.
type ContentStore interface {
	SaveGenerationResult(ctx context.Context, result *GenerationResult) (string, error)
	GetGenerationResult(ctx context.Context, contentID string) (*GenerationResult, error)
	SaveConsistencyScore(ctx context.Context, contentID string, score *ConsistencyScore) error
}
