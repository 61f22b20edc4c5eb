package admin

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/pagination"
)

type productRequest struct {
	Name             string             `json:"name" validate:"required"`
	CategoryID       string             `json:"category_id"`
	Category         string             `json:"category"`
	Subcategory      string             `json:"subcategory"`
	Price            int64              `json:"price" validate:"gte=0"`
	OriginalPrice    *int64             `json:"originalPrice" validate:"omitempty,gte=0"`
	Image            string             `json:"image"`
	Images           []string           `json:"images"`
	Description      string             `json:"description"`
	Stock            int                `json:"stock" validate:"gte=0"`
	Rating           float64            `json:"rating" validate:"gte=0,lte=5"`
	Reviews          int                `json:"reviews" validate:"gte=0"`
	Discount         *int               `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Status           enums.RecordStatus `json:"status"`
	CoinReward       *int64             `json:"coinReward" validate:"omitempty,gte=0"`
	MaxCoinDeduction *int64             `json:"maxCoinDeduction" validate:"omitempty,gte=0"`
}

func (p productRequest) toModel(id string) models.Product {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return models.Product{
		ID:               id,
		Name:             p.Name,
		Category:         p.Category,
		CategoryID:       p.CategoryID,
		Subcategory:      p.Subcategory,
		Price:            p.Price,
		OriginalPrice:    p.OriginalPrice,
		Image:            p.Image,
		Images:           images,
		Description:      p.Description,
		Stock:            p.Stock,
		Rating:           p.Rating,
		Reviews:          p.Reviews,
		Discount:         p.Discount,
		Status:           p.Status,
		CoinReward:       p.CoinReward,
		MaxCoinDeduction: p.MaxCoinDeduction,
	}
}

// ProductList includes inactive products and filters by ?q= on name.
func ProductList(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products := repo.Products()
		if q := strings.ToLower(validators.SanitizeString(r.URL.Query().Get("q"), validators.MaxSearchLen)); q != "" {
			filtered := make([]models.Product, 0, len(products))
			for _, p := range products {
				if strings.Contains(strings.ToLower(p.Name), q) {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}
		responses.WriteSuccess(w, pagination.Slice(products, pagination.Params{Limit: limit, Offset: offset}))
	}
}

func ProductCreate(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := repo.SaveProduct(r.Context(), req.toModel(""))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, saved)
	}
}

func ProductUpdate(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		if _, ok := repo.FindProduct(id); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		var req productRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := repo.SaveProduct(r.Context(), req.toModel(id))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

func ProductDelete(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repo.DeleteProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
