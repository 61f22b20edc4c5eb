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

// OrderList returns orders newest first, optionally narrowed by ?status=.
func OrderList(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
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
		orders := repo.Orders()
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
				return
			}
			filtered := make([]models.Order, 0, len(orders))
			for _, o := range orders {
				if o.Status == status {
					filtered = append(filtered, o)
				}
			}
			orders = filtered
		}
		responses.WriteSuccess(w, pagination.Slice(orders, pagination.Params{Limit: limit, Offset: offset}))
	}
}

type orderStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// OrderUpdateStatus is the only edit an order accepts after placement.
func OrderUpdateStatus(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := repo.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
