package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

type categoryRequest struct {
	Name          string             `json:"name" validate:"required"`
	Icon          string             `json:"icon"`
	Thumbnail     string             `json:"thumbnail"`
	IsPopular     bool               `json:"is_popular"`
	Status        enums.RecordStatus `json:"status"`
	Subcategories []string           `json:"subcategories"`
}

func (c categoryRequest) toModel(existing models.Category) models.Category {
	existing.Name = c.Name
	existing.Icon = c.Icon
	existing.Thumbnail = c.Thumbnail
	existing.IsPopular = c.IsPopular
	existing.Status = c.Status
	existing.Subcategories = c.Subcategories
	return existing
}

func CategoryList(repo *catalog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, repo.Categories())
	}
}

func CategoryCreate(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := repo.SaveCategory(r.Context(), req.toModel(models.Category{}))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, saved)
	}
}

// CategoryUpdate renames propagate to the products filed under the category.
func CategoryUpdate(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, ok := repo.FindCategory(chi.URLParam(r, "categoryId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "category not found"))
			return
		}
		var req categoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := repo.SaveCategory(r.Context(), req.toModel(existing))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

func CategoryDelete(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repo.DeleteCategory(r.Context(), chi.URLParam(r, "categoryId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
