package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/api/validators"
	"github.com/angelmondragon/superstore-backend/internal/auth"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/pagination"
)

// CustomerList never exposes stored credentials.
func CustomerList(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
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
		customers := repo.Customers()
		views := make([]auth.CustomerDTO, 0, len(customers))
		for _, c := range customers {
			views = append(views, *auth.FromCustomer(c))
		}
		responses.WriteSuccess(w, pagination.Slice(views, pagination.Params{Limit: limit, Offset: offset}))
	}
}

func CustomerToggleBlock(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer, err := repo.ToggleCustomerBlock(r.Context(), chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, auth.FromCustomer(customer))
	}
}

func CustomerDelete(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repo.DeleteCustomer(r.Context(), chi.URLParam(r, "customerId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
