package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/observability"
	"go.uber.org/zap"
)

// Handler handles HTTP requests.
type Handler struct {
	generator *domain.GenerationService
	scorer    *domain.ConsistencyService
	failover  domain.FailoverExecutor
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	generator *domain.GenerationService,
	scorer *domain.ConsistencyService,
	failover domain.FailoverExecutor,
) *Handler {
	return &Handler{
		generator: generator,
		scorer:    scorer,
		failover:  failover,
	}
}

// errorResponse is the structured error body. Raw provider error bodies are
// never echoed here, only logged internally.
type errorResponse struct {
	Kind       string           `json:"kind"`
	Message    string           `json:"message"`
	RetryAfter int              `json:"retry_after,omitempty"` // seconds
	Attempts   []domain.Attempt `json:"attempts,omitempty"`
}

// HandleGenerate processes content generation requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "validation_error",
			Message: "invalid request body",
		})
		return
	}
	req.CallerID = callerID(r)

	logger := observability.FromContext(ctx)
	logger.Info("generation request received",
		zap.String("brand_id", req.BrandID),
		zap.String("content_type", string(req.ContentType)),
		zap.String("platform", string(req.Platform)),
		zap.String("preferred_provider", req.PreferredProvider),
	)

	result, err := h.generator.GenerateContent(ctx, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// analyzeRequest references a stored content piece.
type analyzeRequest struct {
	ContentID string `json:"content_id"`
}

// HandleAnalyzeConsistency scores stored content against its brand.
func (h *Handler) HandleAnalyzeConsistency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "validation_error",
			Message: "invalid request body",
		})
		return
	}

	score, err := h.scorer.ScoreContent(ctx, req.ContentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, score)
}

// HandleProvidersStatus reports per-adapter circuit state.
func (h *Handler) HandleProvidersStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"providers": h.failover.Status(),
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeError maps domain errors onto structured HTTP responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.FromContext(r.Context())

	var validationErr *domain.ValidationError
	var brandErr *domain.InvalidBrandError
	var comboErr *domain.UnsupportedCombinationError
	var rateErr *domain.RateLimitedError
	var unavailableErr *domain.AllProvidersUnavailableError
	var providerErr *domain.ProviderError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "validation_error",
			Message: validationErr.Error(),
		})

	case errors.As(err, &brandErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "invalid_brand",
			Message: brandErr.Error(),
		})

	case errors.As(err, &comboErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "unsupported_combination",
			Message: comboErr.Error(),
		})

	case errors.Is(err, domain.ErrBrandNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Kind:    "brand_not_found",
			Message: "brand not found",
		})

	case errors.Is(err, domain.ErrContentNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Kind:    "content_not_found",
			Message: "content not found",
		})

	case errors.As(err, &rateErr):
		retryAfter := int(math.Ceil(rateErr.RetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Kind:       "rate_limited",
			Message:    "request quota exceeded",
			RetryAfter: retryAfter,
		})

	case errors.As(err, &unavailableErr):
		logger.Error("all providers unavailable", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Kind:     "all_providers_unavailable",
			Message:  "all AI providers failed; see attempts for details",
			Attempts: unavailableErr.Trail,
		})

	case errors.As(err, &providerErr) && providerErr.Kind == domain.ErrKindAuth:
		logger.Error("provider credentials rejected", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Kind:    "auth_error",
			Message: "provider credentials rejected",
		})

	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Kind:    "internal_error",
			Message: "internal error",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// callerID resolves the opaque rate-limit key for this request.
func callerID(r *http.Request) string {
	if caller := r.Header.Get("X-Caller-Id"); caller != "" {
		return caller
	}
	return r.RemoteAddr
}
