// Package session carries per-request configuration (credential, tier,
// correlation id) through a context. A stdio process has one implicit
// session; the served binding resolves one per HTTP request.
package session

import (
	"context"

	"cmc-mcp/internal/registry"
)

type contextKey int

const (
	credentialKey contextKey = iota
	tierKey
	correlationIDKey
)

// WithCredential stores the API key to forward upstream.
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey, credential)
}

// Credential returns the API key stored in ctx, if any.
func Credential(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(credentialKey).(string)
	return v, ok && v != ""
}

// WithTier stores the subscription tier resolved for the request.
func WithTier(ctx context.Context, tier registry.Tier) context.Context {
	return context.WithValue(ctx, tierKey, tier)
}

// Tier returns the tier stored in ctx, if any.
func Tier(ctx context.Context) (registry.Tier, bool) {
	if ctx == nil {
		return registry.Basic, false
	}
	v, ok := ctx.Value(tierKey).(registry.Tier)
	return v, ok
}

// WithCorrelationID stores the request correlation id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID returns the correlation id stored in ctx, or "".
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(correlationIDKey).(string)
	return v
}
