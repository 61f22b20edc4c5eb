package coins

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/superstore-backend/internal/session"
	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/metrics"
)

// Grant sources, used as the metric label.
const (
	SourceCheckIn  = "checkin"
	SourceMission  = "mission"
	SourceProduct  = "product"
	SourceAdjusted = "adjusted"
)

// ErrCheckInCoolingDown rejects a claim made before the cooldown has elapsed.
var ErrCheckInCoolingDown = pkgerrors.New(pkgerrors.CodeStateConflict, "daily check-in already claimed")

// Ledger is the part of the catalog the wallet reads and mirrors into.
type Ledger interface {
	FindProduct(id string) (models.Product, bool)
	SetCustomerCoins(ctx context.Context, id string, coins int64) (models.Customer, error)
}

type Params struct {
	State    *session.State
	Ledger   Ledger
	Clock    clock.Clock
	Commerce config.CommerceConfig
	Metrics  *metrics.StoreMetrics
	Logger   *logger.Logger
}

// Engine owns one session's wallet, daily check-in and missions.
type Engine struct {
	state    *session.State
	ledger   Ledger
	clock    clock.Clock
	commerce config.CommerceConfig
	metrics  *metrics.StoreMetrics
	logg     *logger.Logger
	missions []Mission
}

func NewEngine(params Params) (*Engine, error) {
	if params.State == nil {
		return nil, fmt.Errorf("session state required")
	}
	commerce := params.Commerce
	if commerce.CheckInCooldown <= 0 {
		commerce = config.DefaultCommerce()
	}
	return &Engine{
		state:    params.State,
		ledger:   params.Ledger,
		clock:    clock.OrDefault(params.Clock),
		commerce: commerce,
		metrics:  params.Metrics,
		logg:     params.Logger,
		missions: DefaultMissions(),
	}, nil
}

// Balance is the spendable coin balance.
func (e *Engine) Balance() int64 {
	return e.state.Coins()
}

// AddCoins adds amount, which may be negative, and clamps the result at zero.
func (e *Engine) AddCoins(ctx context.Context, amount int64) int64 {
	next := e.state.UpdateCoins(ctx, func(cur int64) int64 { return cur + amount })
	e.mirror(ctx, next)
	return next
}

// SetBalance overwrites the balance, clamped at zero.
func (e *Engine) SetBalance(ctx context.Context, balance int64) int64 {
	next := e.state.UpdateCoins(ctx, func(int64) int64 { return balance })
	e.mirror(ctx, next)
	return next
}

func (e *Engine) grant(ctx context.Context, source string, amount int64) int64 {
	balance := e.AddCoins(ctx, amount)
	e.metrics.AddCoinsGranted(source, amount)
	return balance
}

// mirror copies the wallet onto the logged-in customer's record.
func (e *Engine) mirror(ctx context.Context, balance int64) {
	if e.ledger == nil || !e.state.IsLoggedIn() {
		return
	}
	user, ok := e.state.CurrentUser()
	if !ok || user.CustomerID == "" {
		return
	}
	if _, err := e.ledger.SetCustomerCoins(ctx, user.CustomerID, balance); err != nil {
		e.logg.Warn(e.logg.WithCustomerID(ctx, user.CustomerID), "coin balance not mirrored: "+err.Error())
	}
}

// RedemptionCap returns the per-item deduction ceiling for cart and the part of
// it the current balance can cover.
func (e *Engine) RedemptionCap(cart []models.CartItem) (maxApplicable, usable int64) {
	for _, item := range cart {
		maxApplicable += item.MaxCoinDeductionValue() * int64(item.Quantity)
	}
	usable = min(e.Balance(), maxApplicable)
	if usable < 0 {
		usable = 0
	}
	return maxApplicable, usable
}

// Clamp bounds requested into [0, usable] for cart.
func (e *Engine) Clamp(requested int64, cart []models.CartItem) int64 {
	_, usable := e.RedemptionCap(cart)
	return max(0, min(requested, usable))
}

// CheckIn is the derived daily check-in state at a point in time.
type CheckIn struct {
	State           enums.CheckInState `json:"state"`
	Remaining       time.Duration      `json:"remaining"`
	NextAvailableAt time.Time          `json:"nextAvailableAt"`
	Reward          int64              `json:"reward"`
}

// Countdown renders the remaining cooldown as HH:MM:SS.
func (c CheckIn) Countdown() string {
	return FormatCountdown(c.Remaining)
}

func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// CheckInStatus computes the check-in state at now.
func (e *Engine) CheckInStatus(now time.Time) CheckIn {
	status := CheckIn{State: enums.CheckInStateClaimable, NextAvailableAt: now, Reward: e.commerce.CheckInReward}
	last, ok := e.state.LastCheckIn()
	if !ok {
		return status
	}
	next := last.Add(e.commerce.CheckInCooldown)
	remaining := next.Sub(now)
	if remaining <= 0 {
		return status
	}
	status.State = enums.CheckInStateCoolingDown
	status.Remaining = remaining
	status.NextAvailableAt = next
	return status
}

// Status is CheckInStatus at the engine clock's now.
func (e *Engine) Status() CheckIn {
	return e.CheckInStatus(e.clock.Now())
}

// ClaimCheckIn grants the daily reward when claimable.
func (e *Engine) ClaimCheckIn(ctx context.Context) (int64, error) {
	now := e.clock.Now()
	if status := e.CheckInStatus(now); status.State != enums.CheckInStateClaimable {
		err := pkgerrors.Wrap(pkgerrors.CodeStateConflict, ErrCheckInCoolingDown, ErrCheckInCoolingDown.Message())
		return e.Balance(), err.WithDetails(map[string]any{
			"remaining":       status.Countdown(),
			"nextAvailableAt": status.NextAvailableAt,
		})
	}
	e.state.SetLastCheckIn(ctx, now)
	balance := e.grant(ctx, SourceCheckIn, e.commerce.CheckInReward)
	e.logg.Info(e.logg.WithSessionID(ctx, e.state.ID()), "daily check-in claimed")
	return balance, nil
}

// Watch calls fn with the current check-in state immediately and on every tick
// until ctx is cancelled. The returned channel is closed once the ticker stops.
func (e *Engine) Watch(ctx context.Context, interval time.Duration, fn func(CheckIn)) <-chan struct{} {
	if interval <= 0 {
		interval = e.commerce.CountdownTick
	}
	if interval <= 0 {
		interval = time.Second
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		fn(e.Status())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(e.Status())
			}
		}
	}()
	return done
}
