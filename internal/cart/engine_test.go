package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/superstore-backend/internal/session"
	"github.com/angelmondragon/superstore-backend/internal/snapshot"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
)

type recordingPrompter struct {
	prompts []string
}

func (r *recordingPrompter) PromptLogin(_ context.Context, sessionID string) {
	r.prompts = append(r.prompts, sessionID)
}

func newEngine(t *testing.T, loggedIn bool) (*Engine, *session.State, *recordingPrompter) {
	t.Helper()
	store, err := snapshot.NewStore(snapshot.StoreParams{Backend: snapshot.NewMemoryBackend()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	state, err := session.Open(context.Background(), store, "s1", session.Defaults{WalletSeed: 2100, Currency: enums.CurrencyBDT})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	state.SetLoggedIn(context.Background(), loggedIn)
	prompter := &recordingPrompter{}
	return NewEngine(state, prompter, nil), state, prompter
}

var (
	drone  = models.Product{ID: "p1", Name: "Drone", Price: 500}
	gimbal = models.Product{ID: "p2", Name: "Gimbal", Price: 1200}
)

func TestAddToCartMergesById(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngine(t, true)

	if err := e.AddToCart(ctx, drone, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := e.AddToCart(ctx, drone, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	cart := e.Cart()
	if len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", cart)
	}

	if err := e.AddToCart(ctx, gimbal, 0); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	cart = e.Cart()
	if len(cart) != 2 || cart[1].Quantity != 1 {
		t.Fatalf("expected zero quantity treated as one, got %+v", cart)
	}
	if e.Subtotal() != 2200 || e.ItemCount() != 3 {
		t.Fatalf("unexpected subtotal %d / count %d", e.Subtotal(), e.ItemCount())
	}
}

func TestAddToCartRequiresLogin(t *testing.T) {
	e, _, prompter := newEngine(t, false)

	err := e.AddToCart(context.Background(), drone, 1)
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
	if len(e.Cart()) != 0 {
		t.Fatal("cart must not change while logged out")
	}
	if len(prompter.prompts) != 1 || prompter.prompts[0] != "s1" {
		t.Fatalf("expected login prompt, got %v", prompter.prompts)
	}
}

func TestUpdateCartQuantity(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngine(t, true)
	_ = e.AddToCart(ctx, drone, 3)

	e.UpdateCartQuantity(ctx, drone.ID, 0)
	if q := e.Cart()[0].Quantity; q != 3 {
		t.Fatalf("quantity 0 must be ignored, got %d", q)
	}
	e.UpdateCartQuantity(ctx, drone.ID, -4)
	if q := e.Cart()[0].Quantity; q != 3 {
		t.Fatalf("negative quantity must be ignored, got %d", q)
	}
	e.UpdateCartQuantity(ctx, drone.ID, 5)
	if q := e.Cart()[0].Quantity; q != 5 {
		t.Fatalf("expected 5, got %d", q)
	}
	e.UpdateCartQuantity(ctx, "missing", 2)
	if len(e.Cart()) != 1 {
		t.Fatal("unknown ids must not add lines")
	}
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngine(t, true)
	_ = e.AddToCart(ctx, drone, 1)
	_ = e.AddToCart(ctx, gimbal, 1)

	e.RemoveFromCart(ctx, "missing")
	if len(e.Cart()) != 2 {
		t.Fatal("removing an unknown id must be a no-op")
	}
	e.RemoveFromCart(ctx, drone.ID)
	if cart := e.Cart(); len(cart) != 1 || cart[0].ID != gimbal.ID {
		t.Fatalf("unexpected cart %+v", cart)
	}
	e.ClearCart(ctx)
	if len(e.Cart()) != 0 {
		t.Fatal("expected empty cart")
	}
}

func TestToggleWishlistIsIdempotentPair(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngine(t, true)

	in, err := e.ToggleWishlist(ctx, drone)
	if err != nil || !in || !e.IsInWishlist(drone.ID) {
		t.Fatalf("expected product added, in=%v err=%v", in, err)
	}
	in, err = e.ToggleWishlist(ctx, drone)
	if err != nil || in || e.IsInWishlist(drone.ID) {
		t.Fatalf("expected product removed, in=%v err=%v", in, err)
	}
	if len(e.Wishlist()) != 0 {
		t.Fatal("expected wishlist back to original state")
	}
}

func TestToggleWishlistRequiresLogin(t *testing.T) {
	e, _, prompter := newEngine(t, false)
	if _, err := e.ToggleWishlist(context.Background(), drone); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if len(prompter.prompts) != 1 {
		t.Fatal("expected a login prompt")
	}
}

func TestCartSurvivesLogout(t *testing.T) {
	ctx := context.Background()
	e, state, _ := newEngine(t, true)
	_ = e.AddToCart(ctx, drone, 1)
	state.SetLoggedIn(ctx, false)
	if len(e.Cart()) != 1 {
		t.Fatal("logout must keep the cart")
	}
	e.RemoveFromCart(ctx, drone.ID)
	if len(e.Cart()) != 0 {
		t.Fatal("remove is not gated on login")
	}
}
