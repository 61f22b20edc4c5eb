package controllers

import (
	"net/http"

	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/auth"
	"github.com/angelmondragon/superstore-backend/internal/storefront"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

type authResponse struct {
	Customer *auth.CustomerDTO `json:"customer"`
	Coins    int64             `json:"coins"`
}

func newAuthResponse(sess *storefront.Session, c *models.Customer) authResponse {
	return authResponse{Customer: auth.FromCustomer(*c), Coins: sess.Coins.Balance()}
}

// loginFailure turns a rejected credential check into a 401 that names the reason.
func loginFailure(err error) error {
	if reason, ok := auth.LoginFailureOf(err); ok {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, err.Error()).
			WithDetails(map[string]string{"reason": string(reason)})
	}
	return err
}

func AuthLogin(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := sess.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, loginFailure(err))
			return
		}
		responses.WriteSuccess(w, newAuthResponse(sess, customer))
	}
}

func AuthSignup(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		var req auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := sess.Signup(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newAuthResponse(sess, customer))
	}
}

// AuthSocial completes a provider login whose identity was already resolved by the client.
func AuthSocial(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		var req auth.SocialAccount
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := sess.SocialLogin(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, loginFailure(err))
			return
		}
		responses.WriteSuccess(w, newAuthResponse(sess, customer))
	}
}

func AuthLogout(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		sess.Logout(r.Context())
		responses.WriteSuccess(w, map[string]bool{"loggedIn": false})
	}
}
