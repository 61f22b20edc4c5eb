package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/superstore-backend/internal/cart"
	"github.com/angelmondragon/superstore-backend/internal/session"
	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/metrics"
)

const (
	orderIDPrefix = "ORD-"
	orderDate     = "2006-01-02"
)

// Service prices the session cart and turns it into orders.
type Service interface {
	Quote(coinsToUse int64) Quote
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
}

// PlaceOrderInput carries the shipping contact and the coins the shopper wants to spend.
type PlaceOrderInput struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerPhone string `json:"customerPhone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	CoinsToUse    int64  `json:"coinsToUse" validate:"gte=0"`
}

// Quote is the price breakdown for the current cart. Amounts are in base currency.
type Quote struct {
	Subtotal      int64           `json:"subtotal"`
	Shipping      int64           `json:"shipping"`
	MaxApplicable int64           `json:"maxApplicable"`
	Usable        int64           `json:"usable"`
	CoinsApplied  int64           `json:"coinsApplied"`
	CoinDiscount  decimal.Decimal `json:"coinDiscount"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"itemCount"`
}

type cartEngine interface {
	RequireLogin(ctx context.Context) error
	Cart() []models.CartItem
	ClearCart(ctx context.Context)
}

type wallet interface {
	RedemptionCap(items []models.CartItem) (maxApplicable, usable int64)
	AddCoins(ctx context.Context, amount int64) int64
}

type orderBook interface {
	PrependOrder(ctx context.Context, order models.Order)
	RecordCustomerOrder(ctx context.Context, id string) (models.Customer, error)
}

// ServiceParams bundles the dependencies of a checkout service.
type ServiceParams struct {
	Session  *session.State
	Cart     cartEngine
	Coins    wallet
	Orders   orderBook
	Clock    clock.Clock
	Commerce config.CommerceConfig
	Metrics  *metrics.StoreMetrics
	Logger   *logger.Logger
}

type service struct {
	session  *session.State
	cart     cartEngine
	coins    wallet
	orders   orderBook
	clock    clock.Clock
	commerce config.CommerceConfig
	metrics  *metrics.StoreMetrics
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Session == nil {
		return nil, fmt.Errorf("session state required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart engine required")
	}
	if params.Coins == nil {
		return nil, fmt.Errorf("coin engine required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order book required")
	}
	commerce := params.Commerce
	if commerce.CoinsPerUnit <= 0 {
		commerce = config.DefaultCommerce()
	}
	return &service{
		session:  params.Session,
		cart:     params.Cart,
		coins:    params.Coins,
		orders:   params.Orders,
		clock:    clock.OrDefault(params.Clock),
		commerce: commerce,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// ShippingFor charges the flat fee unless subtotal exceeds the free-shipping threshold.
func ShippingFor(subtotal int64, commerce config.CommerceConfig) int64 {
	if subtotal > commerce.FreeShippingThreshold {
		return 0
	}
	return commerce.ShippingFee
}

func (s *service) Quote(coinsToUse int64) Quote {
	return s.quote(s.cart.Cart(), coinsToUse)
}

// quote clamps coinsToUse to the redemption cap before deriving the discount.
func (s *service) quote(items []models.CartItem, coinsToUse int64) Quote {
	subtotal := cart.Subtotal(items)
	shipping := ShippingFor(subtotal, s.commerce)
	maxApplicable, usable := s.coins.RedemptionCap(items)
	applied := max(0, min(coinsToUse, usable))

	discount := decimal.NewFromInt(applied).Div(decimal.NewFromInt(s.commerce.CoinsPerUnit))
	total := decimal.NewFromInt(subtotal + shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return Quote{
		Subtotal:      subtotal,
		Shipping:      shipping,
		MaxApplicable: maxApplicable,
		Usable:        usable,
		CoinsApplied:  applied,
		CoinDiscount:  discount,
		Total:         total,
		ItemCount:     count,
	}
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if err := s.cart.RequireLogin(ctx); err != nil {
		return nil, err
	}
	items := s.cart.Cart()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	q := s.quote(items, input.CoinsToUse)
	id, err := newOrderID()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order id")
	}

	order := models.Order{
		ID:            id,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Address:       strings.TrimSpace(input.Address),
		Subtotal:      q.Subtotal,
		Shipping:      q.Shipping,
		Total:         q.Total,
		Status:        enums.OrderStatusPaid,
		Date:          s.clock.Now().Format(orderDate),
		Items:         items,
		CoinsUsed:     q.CoinsApplied,
		CoinDiscount:  q.CoinDiscount,
	}
	if user, ok := s.session.CurrentUser(); ok {
		order.CustomerID = user.CustomerID
	}

	if q.CoinsApplied > 0 {
		s.coins.AddCoins(ctx, -q.CoinsApplied)
	}
	s.orders.PrependOrder(ctx, order)
	s.cart.ClearCart(ctx)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id":   order.ID,
		"total":      order.Total.String(),
		"coins_used": order.CoinsUsed,
	})
	if order.CustomerID != "" {
		if _, err := s.orders.RecordCustomerOrder(ctx, order.CustomerID); err != nil {
			s.logg.Warn(logCtx, "customer order count not updated: "+err.Error())
		}
	}
	s.metrics.ObserveOrder(order.Total.InexactFloat64(), order.CoinsUsed)
	s.logg.Info(logCtx, "order placed")

	placed := order.Clone()
	return &placed, nil
}

func newOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return orderIDPrefix + strings.ToUpper(id.String()), nil
}
