package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/api/responses"
	"github.com/angelmondragon/superstore-backend/internal/coins"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

type checkInView struct {
	State            enums.CheckInState `json:"state"`
	RemainingSeconds int64              `json:"remainingSeconds"`
	Countdown        string             `json:"countdown"`
	NextAvailableAt  time.Time          `json:"nextAvailableAt"`
	Reward           int64              `json:"reward"`
}

func newCheckInView(c coins.CheckIn) checkInView {
	return checkInView{
		State:            c.State,
		RemainingSeconds: int64(c.Remaining.Round(time.Second) / time.Second),
		Countdown:        c.Countdown(),
		NextAvailableAt:  c.NextAvailableAt,
		Reward:           c.Reward,
	}
}

type coinsStatusResponse struct {
	Balance  int64           `json:"balance"`
	CheckIn  checkInView     `json:"checkIn"`
	Missions []coins.Mission `json:"missions"`
}

func CoinsStatus(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, coinsStatusResponse{
			Balance:  sess.Coins.Balance(),
			CheckIn:  newCheckInView(sess.Coins.Status()),
			Missions: sess.Coins.Missions(),
		})
	}
}

// CoinsCheckIn claims the daily reward; a claim during the cooldown is a 422 carrying the countdown.
func CoinsCheckIn(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		balance, err := sess.Coins.ClaimCheckIn(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"balance": balance,
			"checkIn": newCheckInView(sess.Coins.Status()),
		})
	}
}

func MissionComplete(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		granted, err := sess.Coins.CompleteMission(r.Context(), chi.URLParam(r, "missionId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"granted":  granted,
			"balance":  sess.Coins.Balance(),
			"missions": sess.Coins.Missions(),
		})
	}
}

func ProductRewardCollect(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.RequireSession(w, r, logg)
		if !ok {
			return
		}
		reward, err := sess.Coins.CollectProductReward(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{
			"collected": reward,
			"balance":   sess.Coins.Balance(),
		})
	}
}
