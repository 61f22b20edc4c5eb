package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/superstore-backend/internal/snapshot"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
)

var testDefaults = Defaults{WalletSeed: 2100, Currency: enums.CurrencyBDT}

func newStore(t *testing.T, backend snapshot.Backend) *snapshot.Store {
	t.Helper()
	store, err := snapshot.NewStore(snapshot.StoreParams{Backend: backend})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestOpenDefaults(t *testing.T) {
	s, err := Open(context.Background(), newStore(t, snapshot.NewMemoryBackend()), "s1", testDefaults)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.IsLoggedIn() || s.IsAdmin() {
		t.Fatal("expected logged out defaults")
	}
	if len(s.Cart()) != 0 || len(s.Wishlist()) != 0 {
		t.Fatal("expected empty cart and wishlist")
	}
	if s.Coins() != 2100 {
		t.Fatalf("expected wallet seed 2100, got %d", s.Coins())
	}
	if s.Currency() != enums.CurrencyBDT {
		t.Fatalf("expected BDT, got %s", s.Currency())
	}
	if _, ok := s.LastCheckIn(); ok {
		t.Fatal("expected no check-in yet")
	}
	if _, ok := s.CurrentUser(); ok {
		t.Fatal("expected no current user")
	}
}

func TestOpenRequiresID(t *testing.T) {
	if _, err := Open(context.Background(), newStore(t, snapshot.NewMemoryBackend()), "  ", testDefaults); err == nil {
		t.Fatal("expected error for blank session id")
	}
}

func TestStatePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	backend := snapshot.NewMemoryBackend()
	store := newStore(t, backend)

	s, err := Open(ctx, store, "s1", testDefaults)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	claim := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	s.SetLoggedIn(ctx, true)
	s.SetAdmin(ctx, true)
	s.UpdateCart(ctx, func(items []models.CartItem) []models.CartItem {
		return append(items, models.CartItem{Product: models.Product{ID: "p1", Price: 500}, Quantity: 2})
	})
	s.UpdateWishlist(ctx, func(items []models.Product) []models.Product {
		return append(items, models.Product{ID: "p2"})
	})
	s.UpdateCoins(ctx, func(c int64) int64 { return c - 100 })
	if err := s.SetCurrency(ctx, enums.CurrencyUSD); err != nil {
		t.Fatalf("SetCurrency: %v", err)
	}
	s.SetLastCheckIn(ctx, claim)
	s.MarkMission(ctx, "share-invite")
	s.SetCurrentUser(ctx, &CurrentUser{CustomerID: "c1", Name: "Md Samiul", Email: "md4518199@gmail.com"})
	s.SetRememberedEmail(ctx, " md4518199@gmail.com ")

	reopened, err := Open(ctx, store, "s1", testDefaults)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.IsLoggedIn() || !reopened.IsAdmin() {
		t.Fatal("expected login flags to persist")
	}
	if cart := reopened.Cart(); len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("unexpected cart %+v", cart)
	}
	if len(reopened.Wishlist()) != 1 {
		t.Fatal("expected wishlist to persist")
	}
	if reopened.Coins() != 2000 {
		t.Fatalf("expected 2000 coins, got %d", reopened.Coins())
	}
	if reopened.Currency() != enums.CurrencyUSD {
		t.Fatalf("expected USD, got %s", reopened.Currency())
	}
	if at, ok := reopened.LastCheckIn(); !ok || !at.Equal(claim) {
		t.Fatalf("unexpected last check-in %v ok=%v", at, ok)
	}
	if !reopened.MissionDone("share-invite") {
		t.Fatal("expected mission to persist")
	}
	if u, ok := reopened.CurrentUser(); !ok || u.CustomerID != "c1" {
		t.Fatalf("unexpected current user %+v", u)
	}
	if reopened.RememberedEmail() != "md4518199@gmail.com" {
		t.Fatalf("unexpected remembered email %q", reopened.RememberedEmail())
	}

	other, _ := Open(ctx, store, "s2", testDefaults)
	if other.IsLoggedIn() || len(other.Cart()) != 0 {
		t.Fatal("sessions must not share state")
	}
}

func TestLogoutKeepsCart(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, newStore(t, snapshot.NewMemoryBackend()), "s1", testDefaults)
	s.SetLoggedIn(ctx, true)
	s.UpdateCart(ctx, func(items []models.CartItem) []models.CartItem {
		return append(items, models.CartItem{Product: models.Product{ID: "p1"}, Quantity: 1})
	})
	s.SetLoggedIn(ctx, false)
	if len(s.Cart()) != 1 {
		t.Fatal("logging out must not clear the cart")
	}
}

func TestCoinsNeverNegative(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, newStore(t, snapshot.NewMemoryBackend()), "s1", testDefaults)
	if got := s.UpdateCoins(ctx, func(c int64) int64 { return c - 10_000 }); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestSetCurrencyRejectsUnknown(t *testing.T) {
	s, _ := Open(context.Background(), newStore(t, snapshot.NewMemoryBackend()), "s1", testDefaults)
	if err := s.SetCurrency(context.Background(), "EUR"); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if s.Currency() != enums.CurrencyBDT {
		t.Fatal("currency should be unchanged")
	}
}

func TestMarkMissionOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, newStore(t, snapshot.NewMemoryBackend()), "s1", testDefaults)
	if !s.MarkMission(ctx, "m1") {
		t.Fatal("expected first completion to report true")
	}
	if s.MarkMission(ctx, "m1") {
		t.Fatal("expected second completion to report false")
	}
}

func TestOpenRepairsCorruptAndDuplicateData(t *testing.T) {
	ctx := context.Background()
	backend := snapshot.NewMemoryBackend()
	_ = backend.Put(ctx, snapshot.SessionKey("s1", snapshot.SessionCart),
		[]byte(`[{"id":"p1","price":10,"quantity":1},{"id":"p1","price":10,"quantity":2},{"id":"p2","quantity":0}]`))
	_ = backend.Put(ctx, snapshot.SessionKey("s1", snapshot.SessionCoins), []byte(`"lots"`))
	_ = backend.Put(ctx, snapshot.SessionKey("s1", snapshot.SessionCurrency), []byte(`"EUR"`))

	s, err := Open(ctx, newStore(t, backend), "s1", testDefaults)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cart := s.Cart()
	if len(cart) != 1 || cart[0].ID != "p1" || cart[0].Quantity != 3 {
		t.Fatalf("expected merged cart, got %+v", cart)
	}
	if s.Coins() != 2100 {
		t.Fatalf("expected seed after corrupt balance, got %d", s.Coins())
	}
	if s.Currency() != enums.CurrencyBDT {
		t.Fatalf("expected default currency, got %s", s.Currency())
	}
}

func newManager(t *testing.T, size int) *Manager {
	t.Helper()
	m, err := NewManager(newStore(t, snapshot.NewMemoryBackend()), testDefaults, size)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestManagerCachesSessions(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 4)

	var wg sync.WaitGroup
	results := make([]*State, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := m.Get(ctx, "shared")
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[i] = s
		}(i)
	}
	wg.Wait()
	for _, s := range results[1:] {
		if s != results[0] {
			t.Fatal("expected every caller to receive the same State")
		}
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 cached session, got %d", m.Len())
	}

	for range results {
		m.Release("shared")
	}
	again, err := m.Get(ctx, "shared")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again != results[0] {
		t.Fatal("expected idle session to be reused")
	}
	m.Forget("shared")
	if m.Len() != 1 {
		t.Fatal("pinned session must survive Forget until released")
	}
	m.Release("shared")
	if m.Len() != 0 {
		t.Fatalf("expected cache to be empty after Forget, got %d", m.Len())
	}
	if _, err := m.Get(ctx, ""); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestManagerBoundsIdleSessions(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 16)

	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("guest-%d", i)
		if _, err := m.Get(ctx, id); err != nil {
			t.Fatalf("Get %s: %v", id, err)
		}
		m.Release(id)
	}
	if got := m.Len(); got != 16 {
		t.Fatalf("expected 16 cached sessions, got %d", got)
	}
}

func TestManagerNeverEvictsPinnedSessions(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 2)

	pinned, err := m.Get(ctx, "checkout")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("guest-%d", i)
		if _, err := m.Get(ctx, id); err != nil {
			t.Fatalf("Get %s: %v", id, err)
		}
		m.Release(id)
	}
	same, err := m.Get(ctx, "checkout")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if same != pinned {
		t.Fatal("pinned session was replaced while in use")
	}
	if got := m.Len(); got != 3 {
		t.Fatalf("expected pinned plus two idle sessions, got %d", got)
	}
}

func TestManagerReloadsEvictedSessionFromSnapshots(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 1)

	s, err := m.Get(ctx, "returning")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	s.UpdateCoins(ctx, func(int64) int64 { return 777 })
	m.Release("returning")

	if _, err := m.Get(ctx, "other"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	m.Release("other")

	reloaded, err := m.Get(ctx, "returning")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded == s {
		t.Fatal("expected evicted session to be reopened")
	}
	if reloaded.Coins() != 777 {
		t.Fatalf("expected persisted wallet 777, got %d", reloaded.Coins())
	}
}
