package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type for context values owned by the API layer.
type ContextKey string

// Context keys for request-scoped values.
const (
	// RequestIDContextKey is the context key for the request correlation id.
	RequestIDContextKey ContextKey = "requestID"

	// PrincipalContextKey is the context key for the verified auth principal.
	PrincipalContextKey ContextKey = "principal"
)

// RequestIDHeader is the header the correlation id is read from and
// written to on every response.
const RequestIDHeader = "x-request-id"

// WithRequestID returns a context carrying the given correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetRequestID retrieves the correlation id from the context.
// If none was assigned, it returns an empty string.
func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDContextKey).(string)
	if !ok {
		return ""
	}
	return requestID
}

// NewRequestID generates a fresh globally-unique correlation id.
func NewRequestID() string {
	return uuid.NewString()
}
