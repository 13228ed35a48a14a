package ctxkeys

import (
	"context"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	ClerkIDKey   contextKey = "clerk_id"
	RequestIDKey contextKey = "request_id"
)

// ClerkID returns the verified identity of the caller, or "" for anonymous
// requests.
func ClerkID(ctx context.Context) string {
	id, _ := ctx.Value(ClerkIDKey).(string)
	return id
}

func WithClerkID(ctx context.Context, clerkID string) context.Context {
	return context.WithValue(ctx, ClerkIDKey, clerkID)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
