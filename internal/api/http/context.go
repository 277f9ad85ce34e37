package http

import (
	"context"

	"rental-tracker-backend/internal/domain"
)

type contextKey int

const sessionKey contextKey = iota

func withSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the authenticated session placed by the auth
// middleware, if any.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok && s != nil
}
