package controllers

import (
	"net/http"

	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/session"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

type sessionResponse struct {
	ID              string               `json:"id"`
	LoggedIn        bool                 `json:"loggedIn"`
	Admin           bool                 `json:"admin"`
	CurrentUser     *session.CurrentUser `json:"currentUser,omitempty"`
	Currency        enums.Currency       `json:"currency"`
	Coins           int64                `json:"coins"`
	CartCount       int                  `json:"cartCount"`
	WishlistCount   int                  `json:"wishlistCount"`
	RememberedEmail string               `json:"rememberedEmail,omitempty"`
}

// SessionInfo returns the shopper's session summary used to hydrate a new tab.
func SessionInfo(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		resp := sessionResponse{
			ID:              sess.ID(),
			LoggedIn:        sess.State.IsLoggedIn(),
			Admin:           sess.State.IsAdmin(),
			Currency:        sess.State.Currency(),
			Coins:           sess.Coins.Balance(),
			CartCount:       sess.Cart.ItemCount(),
			WishlistCount:   len(sess.Cart.Wishlist()),
			RememberedEmail: sess.State.RememberedEmail(),
		}
		if user, ok := sess.State.CurrentUser(); ok {
			resp.CurrentUser = &user
		}
		responses.WriteSuccess(w, resp)
	}
}

type currencyRequest struct {
	Currency string `json:"currency" validate:"required,oneof=BDT USD"`
}

// SetCurrency switches the session's display currency.
func SetCurrency(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		var req currencyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.State.SetCurrency(r.Context(), enums.Currency(req.Currency)); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported currency"))
			return
		}
		responses.WriteSuccess(w, map[string]enums.Currency{"currency": sess.State.Currency()})
	}
}
