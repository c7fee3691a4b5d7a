package middleware

import (
	"context"

	"github.com/trophyroom/backend/pkg/session"
)

type contextKey string

const ctxSession contextKey = "session_claims"

// SessionFromContext returns the verified session claims seeded by Auth, or
// nil when the request is anonymous.
func SessionFromContext(ctx context.Context) *session.Claims {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*session.Claims); ok {
		return v
	}
	return nil
}

// SteamIDFromContext returns the authenticated Steam id, or "".
func SteamIDFromContext(ctx context.Context) string {
	if claims := SessionFromContext(ctx); claims != nil {
		return claims.SteamID
	}
	return ""
}

// WithSession injects verified claims into the context.
func WithSession(ctx context.Context, claims *session.Claims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, claims)
}
