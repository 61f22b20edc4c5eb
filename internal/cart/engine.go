package cart

import (
	"context"

	"github.com/angelmondragon/superstore-backend/internal/session"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

// ErrLoginRequired is returned instead of mutating when the shopper is logged out.
var ErrLoginRequired = pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")

// LoginPrompter is told when a gated action was attempted while logged out.
type LoginPrompter interface {
	PromptLogin(ctx context.Context, sessionID string)
}

// Engine mutates one session's cart and wishlist. Both are keyed by product id.
type Engine struct {
	state    *session.State
	prompter LoginPrompter
	logg     *logger.Logger
}

func NewEngine(state *session.State, prompter LoginPrompter, logg *logger.Logger) *Engine {
	return &Engine{state: state, prompter: prompter, logg: logg}
}

// RequireLogin returns ErrLoginRequired, after prompting, when the shopper is logged out.
func (e *Engine) RequireLogin(ctx context.Context) error {
	if e.state.IsLoggedIn() {
		return nil
	}
	if e.prompter != nil {
		e.prompter.PromptLogin(ctx, e.state.ID())
	}
	e.logg.Info(e.logg.WithSessionID(ctx, e.state.ID()), "login required for cart action")
	return ErrLoginRequired
}

// AddToCart merges quantity into an existing line or appends a new one.
// Quantities below one are treated as one.
func (e *Engine) AddToCart(ctx context.Context, product models.Product, quantity int) error {
	if err := e.RequireLogin(ctx); err != nil {
		return err
	}
	if product.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		quantity = 1
	}
	e.state.UpdateCart(ctx, func(items []models.CartItem) []models.CartItem {
		for i := range items {
			if items[i].ID == product.ID {
				items[i].Quantity += quantity
				return items
			}
		}
		return append(items, models.CartItem{Product: product.Clone(), Quantity: quantity})
	})
	return nil
}

// RemoveFromCart drops the line for productID, if any.
func (e *Engine) RemoveFromCart(ctx context.Context, productID string) {
	e.state.UpdateCart(ctx, func(items []models.CartItem) []models.CartItem {
		out := items[:0]
		for _, item := range items {
			if item.ID != productID {
				out = append(out, item)
			}
		}
		return out
	})
}

// UpdateCartQuantity sets the quantity of an existing line. Quantities below one
// and unknown ids are ignored.
func (e *Engine) UpdateCartQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		return
	}
	if !e.inCart(productID) {
		return
	}
	e.state.UpdateCart(ctx, func(items []models.CartItem) []models.CartItem {
		for i := range items {
			if items[i].ID == productID {
				items[i].Quantity = quantity
			}
		}
		return items
	})
}

func (e *Engine) inCart(productID string) bool {
	for _, item := range e.state.Cart() {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// ToggleWishlist adds the product when absent and removes it when present.
// It reports whether the product is in the wishlist afterwards.
func (e *Engine) ToggleWishlist(ctx context.Context, product models.Product) (bool, error) {
	if err := e.RequireLogin(ctx); err != nil {
		return false, err
	}
	if product.ID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	present := false
	e.state.UpdateWishlist(ctx, func(items []models.Product) []models.Product {
		for i := range items {
			if items[i].ID == product.ID {
				return append(items[:i], items[i+1:]...)
			}
		}
		present = true
		return append(items, product.Clone())
	})
	return present, nil
}

func (e *Engine) IsInWishlist(productID string) bool {
	for _, p := range e.state.Wishlist() {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// ClearCart empties the cart.
func (e *Engine) ClearCart(ctx context.Context) {
	e.state.UpdateCart(ctx, func([]models.CartItem) []models.CartItem {
		return []models.CartItem{}
	})
}

func (e *Engine) Cart() []models.CartItem {
	return e.state.Cart()
}

func (e *Engine) Wishlist() []models.Product {
	return e.state.Wishlist()
}

// Subtotal is the sum of price times quantity in base currency.
func (e *Engine) Subtotal() int64 {
	return Subtotal(e.state.Cart())
}

// ItemCount is the total quantity across lines.
func (e *Engine) ItemCount() int {
	n := 0
	for _, item := range e.state.Cart() {
		n += item.Quantity
	}
	return n
}

// Subtotal sums the line totals of items.
func Subtotal(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
