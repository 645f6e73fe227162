// Package requestctx carries per-request identity through context.
package requestctx

import (
	"context"
	"strings"
)

type visitorIDContextKey struct{}

// WithVisitorID stores the anonymous visitor identifier in context.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, visitorIDContextKey{}, strings.TrimSpace(visitorID))
}

// VisitorIDFromContext returns the visitor identifier stored in context.
func VisitorIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(visitorIDContextKey{}).(string)
	return value
}
