package middleware

import (
	"context"

	"github.com/angelmondragon/superstore-backend/internal/storefront"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
)

type contextKey string

const (
	ctxSession contextKey = "session"
	ctxRole    contextKey = "actor_role"
)

// SessionFromContext returns the session opened by the Session middleware.
func SessionFromContext(ctx context.Context) *storefront.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*storefront.Session); ok {
		return v
	}
	return nil
}

// WithSession injects the shopper session into the context.
func WithSession(ctx context.Context, sess *storefront.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

func RoleFromContext(ctx context.Context) enums.ActorRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.ActorRole); ok {
		return v
	}
	return ""
}

func withRole(ctx context.Context, role enums.ActorRole) context.Context {
	return context.WithValue(ctx, ctxRole, role)
}
