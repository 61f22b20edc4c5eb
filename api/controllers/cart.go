package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/internal/storefront"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

type cartResponse struct {
	Items           []models.CartItem `json:"items"`
	Subtotal        int64             `json:"subtotal"`
	DisplaySubtotal string            `json:"displaySubtotal"`
	ItemCount       int               `json:"itemCount"`
}

func newCartResponse(sess *storefront.Session) cartResponse {
	subtotal := sess.Cart.Subtotal()
	return cartResponse{
		Items:           sess.Cart.Cart(),
		Subtotal:        subtotal,
		DisplaySubtotal: sess.FormatPrice(subtotal),
		ItemCount:       sess.Cart.ItemCount(),
	}
}

func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// CartAddItem adds a product, merging with an existing line. Guests get 401.
func CartAddItem(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := activeProduct(repo, req.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.Cart.AddToCart(r.Context(), product, req.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdateItem sets a line's quantity. Quantities below one and unknown products are ignored.
func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.Cart.UpdateCartQuantity(r.Context(), chi.URLParam(r, "productId"), req.Quantity)
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}

func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		sess.Cart.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"))
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}

func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		sess.Cart.ClearCart(r.Context())
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}
