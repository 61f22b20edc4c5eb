package coins

import (
	"context"

	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
)

const (
	MissionBrowseCoinsChannel  = "browse-coins-channel"
	MissionShareInvite         = "share-invite"
	MissionLowPriceBrowse      = "low-price-browse"
	MissionEnableNotifications = "enable-notifications"
)

const productRewardPrefix = "product-reward:"

// Mission is a one-shot task that pays a fixed reward.
type Mission struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Reward int64  `json:"reward"`
	Done   bool   `json:"done"`
}

func DefaultMissions() []Mission {
	return []Mission{
		{ID: MissionBrowseCoinsChannel, Title: "Browse the Coins channel", Reward: 100},
		{ID: MissionShareInvite, Title: "Share an invite with a friend", Reward: 200},
		{ID: MissionLowPriceBrowse, Title: "Browse low price picks", Reward: 50},
		{ID: MissionEnableNotifications, Title: "Turn on notifications", Reward: 100},
	}
}

// Missions lists the missions with their completion flags.
func (e *Engine) Missions() []Mission {
	out := make([]Mission, len(e.missions))
	for i, m := range e.missions {
		m.Done = e.state.MissionDone(m.ID)
		out[i] = m
	}
	return out
}

// CompleteMission pays the mission reward the first time it is completed.
// It reports whether coins were granted.
func (e *Engine) CompleteMission(ctx context.Context, id string) (bool, error) {
	var mission *Mission
	for i := range e.missions {
		if e.missions[i].ID == id {
			mission = &e.missions[i]
			break
		}
	}
	if mission == nil {
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "mission not found").
			WithDetails(map[string]any{"mission": id})
	}
	if !e.state.MarkMission(ctx, id) {
		return false, nil
	}
	e.grant(ctx, SourceMission, mission.Reward)
	return true, nil
}

// CollectProductReward grants a product's coin reward once per session.
func (e *Engine) CollectProductReward(ctx context.Context, productID string) (int64, error) {
	if e.ledger == nil {
		return 0, pkgerrors.New(pkgerrors.CodeInternal, "product lookup unavailable")
	}
	product, ok := e.ledger.FindProduct(productID)
	if !ok || !product.IsActive() {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	reward := product.CoinRewardValue()
	if reward <= 0 {
		return 0, nil
	}
	if !e.state.MarkMission(ctx, productRewardPrefix+productID) {
		return 0, nil
	}
	e.grant(ctx, SourceProduct, reward)
	return reward, nil
}
