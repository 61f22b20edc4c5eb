package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

func WishlistFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		items := sess.Cart.Wishlist()
		views := make([]productView, 0, len(items))
		for _, p := range items {
			views = append(views, newProductView(sess, p))
		}
		responses.WriteSuccess(w, views)
	}
}

// WishlistToggle adds the product when absent and removes it otherwise.
func WishlistToggle(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		id := chi.URLParam(r, "productId")
		product, err := activeProduct(repo, id)
		if err != nil {
			// a product hidden after it was saved can still be removed
			saved, found := savedProduct(sess.Cart.Wishlist(), id)
			if !found {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			product = saved
		}
		added, err := sess.Cart.ToggleWishlist(r.Context(), product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"productId":  product.ID,
			"inWishlist": added,
			"count":      len(sess.Cart.Wishlist()),
		})
	}
}

func savedProduct(items []models.Product, id string) (models.Product, bool) {
	for _, p := range items {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
