package observability

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

type contextKey string

const (
	traceIDBytes = 16 // OpenTelemetry trace ID size in bytes
)

const (
	// TraceIDKey holds the OpenTelemetry trace ID.
	TraceIDKey contextKey = "trace_id"

	// RequestIDKey holds the unique request identifier.
	RequestIDKey contextKey = "request_id"

	// CallerIDKey holds the opaque caller identity used as the rate-limit key.
	CallerIDKey contextKey = "caller_id"

	// ProviderKey holds the AI provider name for this request.
	ProviderKey contextKey = "provider"

	// ContentTypeKey holds the requested content type.
	ContentTypeKey contextKey = "content_type"

	// BrandIDKey holds the brand identifier for this request.
	BrandIDKey contextKey = "brand_id"
)

// WithTraceID injects trace ID into context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// WithRequestID injects request ID into context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithCallerID injects caller ID into context.
func WithCallerID(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, CallerIDKey, callerID)
}

// WithProvider injects provider name into context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// WithContentType injects content type into context.
func WithContentType(ctx context.Context, contentType string) context.Context {
	return context.WithValue(ctx, ContentTypeKey, contentType)
}

// WithBrandID injects brand ID into context.
func WithBrandID(ctx context.Context, brandID string) context.Context {
	return context.WithValue(ctx, BrandIDKey, brandID)
}

// GetTraceID extracts trace ID from context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// GetRequestID extracts request ID from context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetCallerID extracts caller ID from context.
func GetCallerID(ctx context.Context) string {
	if callerID, ok := ctx.Value(CallerIDKey).(string); ok {
		return callerID
	}
	return ""
}

// GetProvider extracts provider name from context.
func GetProvider(ctx context.Context) string {
	if provider, ok := ctx.Value(ProviderKey).(string); ok {
		return provider
	}
	return ""
}

// GetContentType extracts content type from context.
func GetContentType(ctx context.Context) string {
	if contentType, ok := ctx.Value(ContentTypeKey).(string); ok {
		return contentType
	}
	return ""
}

// GetBrandID extracts brand ID from context.
func GetBrandID(ctx context.Context) string {
	if brandID, ok := ctx.Value(BrandIDKey).(string); ok {
		return brandID
	}
	return ""
}

// GenerateTraceID generates an OpenTelemetry-compatible trace ID (32 hex chars).
func GenerateTraceID() string {
	bytes := make([]byte, traceIDBytes)
	if _, err := rand.Read(bytes); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(bytes)
}

// GenerateRequestID generates a unique request identifier (UUID).
func GenerateRequestID() string {
	return uuid.New().String()
}
