// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import "context"

type nitKey struct{}

// WithNIT returns a context carrying the authenticated provider NIT.
func WithNIT(ctx context.Context, nit string) context.Context {
	return context.WithValue(ctx, nitKey{}, nit)
}

// NIT returns the authenticated provider NIT from the context, or "" if the
// request is anonymous.
func NIT(ctx context.Context) string {
	if nit, ok := ctx.Value(nitKey{}).(string); ok {
		return nit
	}
	return ""
}

// IsAuthenticated returns true if the context has an authenticated principal.
func IsAuthenticated(ctx context.Context) bool {
	return NIT(ctx) != ""
}
