package observability

import "go.uber.org/zap"

// Field aliases so callers outside this package can attach structured fields
// without importing zap directly.
//
//nolint:gochecknoglobals // Function aliases, not mutable state
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Float64  = zap.Float64
	Duration = zap.Duration
	Strings  = zap.Strings
	Error    = zap.Error
	Any      = zap.Any
)
