package admin

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

func SiteMediaFetch(repo *catalog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, repo.SiteMedia())
	}
}

// SiteMediaUpdate replaces the hero slides and promo banner wholesale.
func SiteMediaUpdate(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SiteMedia
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		for i := range req.HeroSlides {
			if err := normalizeMediaItem(&req.HeroSlides[i]); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if err := normalizeMediaItem(&req.PromoBanner); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		repo.SetSiteMedia(r.Context(), req)
		responses.WriteSuccess(w, repo.SiteMedia())
	}
}

func normalizeMediaItem(item *models.MediaItem) error {
	item.URL = strings.TrimSpace(item.URL)
	if item.URL == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "media url is required")
	}
	if item.Type == "" {
		item.Type = enums.MediaTypeImage
	}
	if !item.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid media type").
			WithDetails(map[string]string{"type": string(item.Type)})
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return nil
}

func MediaLibraryList(repo *catalog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, repo.MediaLibrary())
	}
}

type libraryItemRequest struct {
	Name string          `json:"name" validate:"required"`
	URL  string          `json:"url" validate:"required"`
	Type enums.MediaType `json:"type" validate:"required"`
}

// MediaLibraryAdd records an already uploaded asset; newest entries come first.
func MediaLibraryAdd(repo *catalog.Repository, clk clock.Clock, logg *logger.Logger) http.HandlerFunc {
	clk = clock.OrDefault(clk)
	return func(w http.ResponseWriter, r *http.Request) {
		var req libraryItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !req.Type.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type"))
			return
		}
		item := models.LibraryItem{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(req.Name),
			URL:       strings.TrimSpace(req.URL),
			Type:      req.Type,
			CreatedAt: clk.Now().UTC().Format(time.RFC3339),
		}
		repo.SetMediaLibrary(r.Context(), append([]models.LibraryItem{item}, repo.MediaLibrary()...))
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func MediaLibraryDelete(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "itemId")
		items := repo.MediaLibrary()
		kept := make([]models.LibraryItem, 0, len(items))
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(items) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "media item not found"))
			return
		}
		repo.SetMediaLibrary(r.Context(), kept)
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
