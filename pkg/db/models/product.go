package models

import "github.com/angelmondragon/superstore-backend/pkg/enums"

// Product is a catalog entry. Prices are whole units of the base currency (BDT).
type Product struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Category         string             `json:"category"`
	CategoryID       string             `json:"category_id"`
	Subcategory      string             `json:"subcategory,omitempty"`
	Price            int64              `json:"price"`
	OriginalPrice    *int64             `json:"originalPrice,omitempty"`
	Image            string             `json:"image"`
	Images           []string           `json:"images"`
	Description      string             `json:"description"`
	Stock            int                `json:"stock"`
	Rating           float64            `json:"rating"`
	Reviews          int                `json:"reviews"`
	Discount         *int               `json:"discount,omitempty"`
	Status           enums.RecordStatus `json:"status"`
	CoinReward       *int64             `json:"coinReward,omitempty"`
	MaxCoinDeduction *int64             `json:"maxCoinDeduction,omitempty"`
}

// IsActive reports whether shoppers may see the product.
func (p Product) IsActive() bool {
	return p.Status == enums.RecordStatusActive
}

// CoinRewardValue returns the coins granted for buying one unit, zero when unset.
func (p Product) CoinRewardValue() int64 {
	if p.CoinReward == nil {
		return 0
	}
	return *p.CoinReward
}

// MaxCoinDeductionValue returns the per-unit redemption limit, zero when unset.
func (p Product) MaxCoinDeductionValue() int64 {
	if p.MaxCoinDeduction == nil {
		return 0
	}
	return *p.MaxCoinDeduction
}

// Clone returns a deep copy so callers cannot alias slices or pointers.
func (p Product) Clone() Product {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	out.OriginalPrice = cloneInt64(p.OriginalPrice)
	out.CoinReward = cloneInt64(p.CoinReward)
	out.MaxCoinDeduction = cloneInt64(p.MaxCoinDeduction)
	if p.Discount != nil {
		v := *p.Discount
		out.Discount = &v
	}
	return out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Int64Ptr is a small helper for optional numeric fields.
func Int64Ptr(v int64) *int64 {
	return &v
}

func IntPtr(v int) *int {
	return &v
}
