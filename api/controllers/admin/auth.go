package admin

import (
	"net/http"

	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/auth"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

// Login checks the bootstrap credentials (and the TOTP code once 2FA is on) and
// returns a bearer token bound to the caller's session.
func Login(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		var req auth.AdminLoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		resp, err := sess.AdminLogin(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func Logout(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		sess.AdminLogout(r.Context())
		responses.WriteSuccess(w, map[string]bool{"admin": false})
	}
}
