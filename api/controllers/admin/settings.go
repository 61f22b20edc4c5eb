package admin

import (
	"net/http"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

func SocialSettingsFetch(repo *catalog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, repo.SocialSettings())
	}
}

func SocialSettingsUpdate(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SocialSettings
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		repo.SetSocialSettings(r.Context(), req)
		responses.WriteSuccess(w, repo.SocialSettings())
	}
}

type profileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Contact   string `json:"contact"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role"`
}

func publicProfile(p models.AdminProfile) models.AdminProfile {
	p.TwoFactorSecret = ""
	return p
}

func ProfileFetch(repo *catalog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, publicProfile(repo.AdminProfile()))
	}
}

// ProfileUpdate edits the display fields; 2FA state only changes through the 2FA endpoints.
func ProfileUpdate(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile := repo.AdminProfile()
		profile.FirstName = req.FirstName
		profile.LastName = req.LastName
		profile.Address = req.Address
		profile.Contact = req.Contact
		profile.Email = req.Email
		if req.Role != "" {
			profile.Role = req.Role
		}
		repo.SetAdminProfile(r.Context(), profile)
		responses.WriteSuccess(w, publicProfile(profile))
	}
}
