package models

// CartItem is a product snapshot plus the quantity requested.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity in base currency.
func (c CartItem) LineTotal() int64 {
	return c.Price * int64(c.Quantity)
}

// Clone returns a deep copy of the item.
func (c CartItem) Clone() CartItem {
	return CartItem{Product: c.Product.Clone(), Quantity: c.Quantity}
}

// CloneCartItems copies a cart so the copy can be frozen into an order.
func CloneCartItems(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
