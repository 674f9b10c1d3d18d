package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for external lookups.
var (
	ErrBrandNotFound   = errors.New("brand not found")
	ErrContentNotFound = errors.New("content not found")
)

// ValidationError indicates a malformed request. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// InvalidBrandError indicates a brand record missing required fields.
type InvalidBrandError struct {
	Missing []string
}

func (e *InvalidBrandError) Error() string {
	return fmt.Sprintf("invalid brand: missing required fields: %s", strings.Join(e.Missing, ", "))
}

// UnsupportedCombinationError indicates no template is registered for the
// requested content type. Platforms always fall back to a generic overlay, so
// only an unknown content type can trigger this.
type UnsupportedCombinationError struct {
	ContentType ContentType
	Platform    Platform
}

func (e *UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("no template registered for content type %q on platform %q", e.ContentType, e.Platform)
}

// RateLimitedError indicates the caller exceeded its quota. The engine does
// not retry; the caller is informed with a retry-after hint.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter.Round(time.Second))
}

// ErrorKind classifies a provider-level failure for retry and failover decisions.
type ErrorKind string

const (
	// ErrKindTransient covers network failures, timeouts and 5xx responses.
	ErrKindTransient ErrorKind = "transient_error"

	// ErrKindProviderRateLimited means the backend signalled quota exhaustion.
	ErrKindProviderRateLimited ErrorKind = "provider_rate_limited"

	// ErrKindAuth means invalid credentials. Surfaced immediately, never retried.
	ErrKindAuth ErrorKind = "auth_error"

	// ErrKindMalformedResponse means the backend returned content that cannot
	// be parsed into the expected shape. Triggers failover, not a retry.
	ErrKindMalformedResponse ErrorKind = "malformed_response"
)

// Retryable reports whether the same adapter may be retried for this kind.
func (k ErrorKind) Retryable() bool {
	return k == ErrKindTransient || k == ErrKindProviderRateLimited
}

// ProviderError wraps a backend failure with its classification.
type ProviderError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewTransientError classifies a failure as retryable.
func NewTransientError(provider string, err error) *ProviderError {
	return &ProviderError{Kind: ErrKindTransient, Provider: provider, Err: err}
}

// NewProviderRateLimitedError classifies a backend quota failure.
func NewProviderRateLimitedError(provider string, err error) *ProviderError {
	return &ProviderError{Kind: ErrKindProviderRateLimited, Provider: provider, Err: err}
}

// NewAuthError classifies a credentials failure.
func NewAuthError(provider string, err error) *ProviderError {
	return &ProviderError{Kind: ErrKindAuth, Provider: provider, Err: err}
}

// NewMalformedResponseError classifies an unparseable backend payload.
func NewMalformedResponseError(provider string, err error) *ProviderError {
	return &ProviderError{Kind: ErrKindMalformedResponse, Provider: provider, Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified errors
// default to transient so an unknown failure still fails over.
func KindOf(err error) ErrorKind {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ErrKindTransient
}

// AllProvidersUnavailableError is the terminal failover outcome: every adapter
// was exhausted or skipped. Carries the full attempt trail for diagnosis.
type AllProvidersUnavailableError struct {
	Trail []Attempt
}

func (e *AllProvidersUnavailableError) Error() string {
	return fmt.Sprintf("all providers unavailable after %d attempts", len(e.Trail))
}
