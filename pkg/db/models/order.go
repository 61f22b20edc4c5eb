package models

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/superstore-backend/pkg/enums"
)

// Order is an immutable purchase record; only Status changes after placement.
type Order struct {
	ID            string            `json:"id"`
	CustomerID    string            `json:"customerId,omitempty"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerPhone string            `json:"customerPhone"`
	Address       string            `json:"address"`
	Subtotal      int64             `json:"subtotal,omitempty"`
	Shipping      int64             `json:"shipping,omitempty"`
	Total         decimal.Decimal   `json:"total"`
	Status        enums.OrderStatus `json:"status"`
	Date          string            `json:"date"`
	Items         []CartItem        `json:"items"`
	CoinsUsed     int64             `json:"coinsUsed"`
	CoinDiscount  decimal.Decimal   `json:"coinDiscount"`
}

func (o Order) Clone() Order {
	out := o
	out.Items = CloneCartItems(o.Items)
	return out
}
