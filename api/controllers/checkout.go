package controllers

import (
	"net/http"

	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/checkout"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

type quoteResponse struct {
	checkout.Quote
	DisplayTotal string `json:"displayTotal"`
	Balance      int64  `json:"balance"`
}

// CheckoutQuote prices the cart for a requested coin redemption (?coins=N).
func CheckoutQuote(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		requested, err := validators.ParseQueryInt(r, "coins", 0, 0, 1<<31-1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote := sess.Checkout.Quote(int64(requested))
		responses.WriteSuccess(w, quoteResponse{
			Quote:        quote,
			DisplayTotal: sess.FormatAmount(quote.Total),
			Balance:      sess.Coins.Balance(),
		})
	}
}

type placeOrderResponse struct {
	Order        *models.Order `json:"order"`
	DisplayTotal string        `json:"displayTotal"`
	Balance      int64         `json:"balance"`
}

func CheckoutPlace(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		var input checkout.PlaceOrderInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := sess.Checkout.PlaceOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, placeOrderResponse{
			Order:        order,
			DisplayTotal: sess.FormatAmount(order.Total),
			Balance:      sess.Coins.Balance(),
		})
	}
}
