package admin

import (
	"net/http"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/internal/twofactor"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

// TwoFactorSetup issues a fresh secret for the admin's authenticator app. Nothing
// is stored until Enable confirms a code generated from it.
func TwoFactorSetup(repo *catalog.Repository, svc *twofactor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret, err := svc.GenerateSecret(repo.AdminProfile().Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, secret)
	}
}

type enableTwoFactorRequest struct {
	Secret string `json:"secret" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

func TwoFactorEnable(svc *twofactor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enableTwoFactorRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Enable(r.Context(), req.Secret, req.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"enabled": true})
	}
}

type disableTwoFactorRequest struct {
	Code string `json:"code" validate:"required"`
}

func TwoFactorDisable(svc *twofactor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req disableTwoFactorRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Disable(r.Context(), req.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"enabled": false})
	}
}
