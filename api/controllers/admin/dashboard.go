package admin

import (
	"net/http"

	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
)

const recentOrderCount = 5

type dashboardResponse struct {
	catalog.DashboardStats
	RecentOrders []models.Order `json:"recentOrders"`
}

func Dashboard(repo *catalog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders := repo.Orders()
		if len(orders) > recentOrderCount {
			orders = orders[:recentOrderCount]
		}
		responses.WriteSuccess(w, dashboardResponse{
			DashboardStats: repo.Stats(),
			RecentOrders:   orders,
		})
	}
}
