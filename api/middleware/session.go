package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/internal/storefront"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

// SessionHeader carries the shopper's session id in both directions.
const SessionHeader = "X-Session-Id"

const maxSessionIDLen = 128

// SessionOpener hands out the engines bound to a session id.
type SessionOpener interface {
	Open(ctx context.Context, sessionID string) (*storefront.Session, error)
}

// Session resolves the X-Session-Id header, minting one when absent, and holds
// the session lock for the rest of the request. The session is released to the
// idle cache when the request ends.
func Session(opener SessionOpener, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if len(sessionID) > maxSessionIDLen {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id too long"))
				return
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			w.Header().Set(SessionHeader, sessionID)

			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			sess, err := opener.Open(ctx, sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open session"))
				return
			}
			defer sess.Close()

			sess.State.Lock()
			defer sess.State.Unlock()

			if logg != nil {
				if user, ok := sess.State.CurrentUser(); ok && user.CustomerID != "" {
					ctx = logg.WithCustomerID(ctx, user.CustomerID)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
		})
	}
}

// RequireSession fails when no session is present in the request context.
func RequireSession(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*storefront.Session, bool) {
	sess := SessionFromContext(r.Context())
	if sess == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
		return nil, false
	}
	return sess, true
}
