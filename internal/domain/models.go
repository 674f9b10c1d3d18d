package domain

import "time"

// ContentType enumerates the kinds of marketing content the engine can produce.
type ContentType string

const (
	ContentTypeSocialPost         ContentType = "social_post"
	ContentTypeBannerAd           ContentType = "banner_ad"
	ContentTypeVideoScript        ContentType = "video_script"
	ContentTypeEmailCampaign      ContentType = "email_campaign"
	ContentTypeBlogPost           ContentType = "blog_post"
	ContentTypeProductDescription ContentType = "product_description"
)

// IsValid reports whether the content type is a known enum member.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeSocialPost, ContentTypeBannerAd, ContentTypeVideoScript,
		ContentTypeEmailCampaign, ContentTypeBlogPost, ContentTypeProductDescription:
		return true
	}
	return false
}

// Platform enumerates the distribution targets content can be tailored for.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformCustom    Platform = "custom"
)

// IsValid reports whether the platform is a known enum member.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformInstagram, PlatformFacebook, PlatformTwitter,
		PlatformLinkedIn, PlatformTikTok, PlatformCustom:
		return true
	}
	return false
}

// BrandRecord is the raw brand row supplied by the external brand store.
type BrandRecord struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Industry          string            `json:"industry,omitempty"`
	Description       string            `json:"description,omitempty"`
	Voice             string            `json:"voice"`
	TargetAudience    string            `json:"target_audience,omitempty"`
	Values            []string          `json:"values,omitempty"`
	MessagingPillars  []string          `json:"messaging_pillars,omitempty"`
	ContentGuidelines map[string]string `json:"content_guidelines,omitempty"`
	ApprovedHashtags  []string          `json:"approved_hashtags,omitempty"`
	BannedWords       []string          `json:"banned_words,omitempty"`
	ImageryStyle      string            `json:"imagery_style,omitempty"`
	ColorPalette      map[string]string `json:"color_palette,omitempty"`
	Typography        map[string]string `json:"typography,omitempty"`
}

// ReferenceMaterialRecord is a reference asset summary precomputed at upload time.
// Raw file analysis never happens inside this engine.
type ReferenceMaterialRecord struct {
	ID          string            `json:"id"`
	BrandID     string            `json:"brand_id"`
	Kind        string            `json:"kind"` // image, document, url, ...
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"` // e.g. dominant_colors, tags
}

// ReferenceSummary is the condensed form of a reference material carried in a
// BrandContext.
type ReferenceSummary struct {
	Kind        string            `json:"kind"`
	Description string            `json:"description"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// BrandContext is an immutable snapshot of everything the prompt builder needs
// to prime a provider with a brand's identity. Built fresh per request and
// never mutated after construction.
type BrandContext struct {
	BrandID           string             `json:"brand_id"`
	Name              string             `json:"name"`
	Industry          string             `json:"industry,omitempty"`
	Description       string             `json:"description,omitempty"`
	Voice             string             `json:"voice"`
	TargetAudience    string             `json:"target_audience,omitempty"`
	Values            []string           `json:"values,omitempty"`
	MessagingPillars  []string           `json:"messaging_pillars,omitempty"`
	ContentGuidelines map[string]string  `json:"content_guidelines,omitempty"`
	ApprovedHashtags  []string           `json:"approved_hashtags,omitempty"`
	BannedWords       []string           `json:"banned_words,omitempty"`
	ImageryStyle      string             `json:"imagery_style,omitempty"`
	ColorPalette      map[string]string  `json:"color_palette,omitempty"`
	Typography        map[string]string  `json:"typography,omitempty"`
	References        []ReferenceSummary `json:"references,omitempty"`
}

// GenerationRequest describes one content generation call.
type GenerationRequest struct {
	CallerID          string            `json:"-"`
	BrandID           string            `json:"brand_id"`
	ContentType       ContentType       `json:"content_type"`
	Platform          Platform          `json:"platform"`
	Brief             string            `json:"brief"`
	AdditionalContext map[string]string `json:"additional_context,omitempty"`
	PreferredProvider string            `json:"preferred_provider,omitempty"`
}

// PromptSpec is a provider-agnostic prompt. Immutable once built.
type PromptSpec struct {
	System       string `json:"system"`
	User         string `json:"user"`
	OutputFormat string `json:"output_format,omitempty"`
}

// Usage tracks token consumption for one provider call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderResult is the normalized output of a single provider call.
// Ephemeral, owned by the call that produced it.
type ProviderResult struct {
	Provider string         `json:"provider"`
	Model    string         `json:"model"`
	Content  string         `json:"content"`
	Payload  map[string]any `json:"payload,omitempty"` // parsed JSON, when the provider returned any
	Usage    Usage          `json:"usage"`
	Latency  time.Duration  `json:"latency"`
}

// Attempt records one entry of the failover trail: either a provider call
// (including each retry) or a circuit-open skip.
type Attempt struct {
	Provider string `json:"provider"`
	Outcome  string `json:"outcome"`
}

// Attempt outcomes.
const (
	OutcomeSuccess             = "success"
	OutcomeCircuitOpen         = "circuit_open"
	OutcomeTransientError      = "transient_error"
	OutcomeProviderRateLimited = "provider_rate_limited"
	OutcomeAuthError           = "auth_error"
	OutcomeMalformedResponse   = "malformed_response"
)

// GenerationResult is the auditable outcome of a generation request.
type GenerationResult struct {
	ID        string         `json:"id"`
	BrandID   string         `json:"brand_id"`
	Provider  string         `json:"provider"`
	Model     string         `json:"model"`
	Content   string         `json:"content"`
	Payload   map[string]any `json:"payload,omitempty"`
	Usage     Usage          `json:"usage"`
	Attempts  []Attempt      `json:"attempts"`
	CreatedAt time.Time      `json:"created_at"`
}

// Deviation is one flagged mismatch between content and brand context.
type Deviation struct {
	Attribute   string `json:"attribute"`
	Observation string `json:"observation"`
}

// ConsistencyScore assesses how well a content piece matches a brand context.
// Immutable once produced.
type ConsistencyScore struct {
	Provider   string      `json:"provider,omitempty"`
	Score      int         `json:"score"` // 0-100
	Rationale  string      `json:"rationale"`
	Deviations []Deviation `json:"deviations,omitempty"`
}

// ProviderStatus exposes per-adapter circuit state for operational visibility.
type ProviderStatus struct {
	Name                string `json:"name"`
	CircuitState        string `json:"circuit_state"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
}

// RateLimitDecision is the outcome of a rate-limit check.
type RateLimitDecision struct {
	Allowed    bool
	RetryAfter time.Duration // populated when denied
}
