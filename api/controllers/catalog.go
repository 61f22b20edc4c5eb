package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/internal/storefront"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/pagination"
)

type productView struct {
	models.Product
	DisplayPrice string `json:"displayPrice"`
	InWishlist   bool   `json:"inWishlist"`
}

func newProductView(sess *storefront.Session, p models.Product) productView {
	return productView{
		Product:      p,
		DisplayPrice: sess.FormatPrice(p.Price),
		InWishlist:   sess.Cart.IsInWishlist(p.ID),
	}
}

func Categories(repo *catalog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, repo.ActiveCategories())
	}
}

// Products lists active products, optionally narrowed by category (id or slug) and a search query.
func Products(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
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

		categoryID := ""
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			c, found := repo.FindCategory(raw)
			if !found {
				c, found = repo.FindCategoryBySlug(raw)
			}
			if !found {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "category not found"))
				return
			}
			categoryID = c.ID
		}

		var list []models.Product
		query := validators.SanitizeString(r.URL.Query().Get("q"), validators.MaxSearchLen)
		switch {
		case query != "":
			list = repo.SearchProducts(query)
		case categoryID != "":
			list = repo.ProductsByCategory(categoryID)
		default:
			list = repo.ActiveProducts()
		}
		if query != "" && categoryID != "" {
			filtered := make([]models.Product, 0, len(list))
			for _, p := range list {
				if p.CategoryID == categoryID {
					filtered = append(filtered, p)
				}
			}
			list = filtered
		}

		page := pagination.Slice(list, pagination.Params{Limit: limit, Offset: offset})
		views := make([]productView, 0, len(page.Items))
		for _, p := range page.Items {
			views = append(views, newProductView(sess, p))
		}
		responses.WriteSuccess(w, pagination.Page[productView]{
			Items:  views,
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		})
	}
}

func ProductDetail(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		product, err := activeProduct(repo, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductView(sess, product))
	}
}

func SiteMedia(repo *catalog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, repo.SiteMedia())
	}
}

func activeProduct(repo *catalog.Repository, id string) (models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, ok := repo.FindProduct(id)
	if !ok || !product.IsActive() {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}
