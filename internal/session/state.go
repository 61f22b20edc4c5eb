package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/superstore-backend/internal/snapshot"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
)

const (
	flagActive   = "active"
	flagInactive = "inactive"
)

// CurrentUser is the display identity of the logged-in customer.
type CurrentUser struct {
	CustomerID string `json:"customerId,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
}

// Defaults seeds fields that have no stored value yet.
type Defaults struct {
	WalletSeed int64
	Currency   enums.Currency
}

// State is one shopper's session. Every field is loaded and persisted under its
// own key, independently of the catalog. Setters write through before returning.
//
// State guards its fields for concurrent readers; callers that need several
// reads and writes to appear atomic hold Lock for the duration.
type State struct {
	op sync.Mutex

	mu    sync.RWMutex
	id    string
	store *snapshot.Store

	loggedIn        bool
	admin           bool
	cart            []models.CartItem
	wishlist        []models.Product
	coins           int64
	currency        enums.Currency
	lastClaimMillis int64
	missions        map[string]bool
	currentUser     *CurrentUser
	rememberedEmail string
}

// Open loads the session's keys, applying defaults for anything missing or corrupt.
func Open(ctx context.Context, store *snapshot.Store, sessionID string, defaults Defaults) (*State, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if !defaults.Currency.IsValid() {
		defaults.Currency = enums.CurrencyBDT
	}
	if defaults.WalletSeed < 0 {
		defaults.WalletSeed = 0
	}

	s := &State{id: sessionID, store: store}
	key := s.key

	s.loggedIn = snapshot.Load(ctx, store, key(snapshot.SessionUser), flagInactive) == flagActive
	s.admin = snapshot.Load(ctx, store, key(snapshot.SessionAdmin), flagInactive) == flagActive
	s.cart = dedupeCart(snapshot.Load(ctx, store, key(snapshot.SessionCart), []models.CartItem{}))
	s.wishlist = dedupeWishlist(snapshot.Load(ctx, store, key(snapshot.SessionWishlist), []models.Product{}))

	s.coins = snapshot.Load(ctx, store, key(snapshot.SessionCoins), defaults.WalletSeed)
	if s.coins < 0 {
		s.coins = 0
	}

	s.currency = snapshot.Load(ctx, store, key(snapshot.SessionCurrency), defaults.Currency)
	if !s.currency.IsValid() {
		s.currency = defaults.Currency
	}

	s.lastClaimMillis = snapshot.Load(ctx, store, key(snapshot.SessionLastClaim), int64(0))
	s.missions = snapshot.Load(ctx, store, key(snapshot.SessionMissions), map[string]bool{})
	if s.missions == nil {
		s.missions = map[string]bool{}
	}
	s.currentUser = snapshot.Load[*CurrentUser](ctx, store, key(snapshot.SessionCurrentUser), nil)
	s.rememberedEmail = snapshot.Load(ctx, store, key(snapshot.SessionRememberMe), "")
	return s, nil
}

func (s *State) key(name string) string {
	return snapshot.SessionKey(s.id, name)
}

// ID is the session handle.
func (s *State) ID() string {
	return s.id
}

// Lock serializes a multi-step operation on this session.
func (s *State) Lock() {
	s.op.Lock()
}

func (s *State) Unlock() {
	s.op.Unlock()
}

func (s *State) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// SetLoggedIn flips the customer login flag. Cart and wishlist are left as they are.
func (s *State) SetLoggedIn(ctx context.Context, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = v
	s.store.Save(ctx, s.key(snapshot.SessionUser), flag(v))
}

func (s *State) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

func (s *State) SetAdmin(ctx context.Context, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = v
	s.store.Save(ctx, s.key(snapshot.SessionAdmin), flag(v))
}

// Cart returns a copy of the cart items in insertion order.
func (s *State) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneCartItems(s.cart)
}

// UpdateCart applies fn to a copy of the cart and persists the result.
func (s *State) UpdateCart(ctx context.Context, fn func([]models.CartItem) []models.CartItem) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(models.CloneCartItems(s.cart))
	if next == nil {
		next = []models.CartItem{}
	}
	s.cart = next
	s.store.Save(ctx, s.key(snapshot.SessionCart), s.cart)
	return models.CloneCartItems(s.cart)
}

func (s *State) Wishlist() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.wishlist)
}

// UpdateWishlist applies fn to a copy of the wishlist and persists the result.
func (s *State) UpdateWishlist(ctx context.Context, fn func([]models.Product) []models.Product) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(cloneProducts(s.wishlist))
	if next == nil {
		next = []models.Product{}
	}
	s.wishlist = next
	s.store.Save(ctx, s.key(snapshot.SessionWishlist), s.wishlist)
	return cloneProducts(s.wishlist)
}

// Coins is the spendable wallet balance.
func (s *State) Coins() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coins
}

// UpdateCoins applies fn to the balance, clamps the result at zero and persists it.
func (s *State) UpdateCoins(ctx context.Context, fn func(int64) int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.coins)
	if next < 0 {
		next = 0
	}
	s.coins = next
	s.store.Save(ctx, s.key(snapshot.SessionCoins), s.coins)
	return s.coins
}

func (s *State) Currency() enums.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency
}

// SetCurrency changes the display currency only; stored amounts stay in base currency.
func (s *State) SetCurrency(ctx context.Context, c enums.Currency) error {
	if !c.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unsupported currency").
			WithDetails(map[string]any{"currency": c})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
	s.store.Save(ctx, s.key(snapshot.SessionCurrency), s.currency)
	return nil
}

// LastCheckIn returns the last check-in claim time, if any.
func (s *State) LastCheckIn() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastClaimMillis <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(s.lastClaimMillis), true
}

func (s *State) SetLastCheckIn(ctx context.Context, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastClaimMillis = at.UnixMilli()
	s.store.Save(ctx, s.key(snapshot.SessionLastClaim), s.lastClaimMillis)
}

// MissionDone reports whether mission id has been completed.
func (s *State) MissionDone(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.missions[id]
}

// MarkMission flags id as completed. It returns false when it already was.
func (s *State) MarkMission(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missions[id] {
		return false
	}
	s.missions[id] = true
	s.store.Save(ctx, s.key(snapshot.SessionMissions), s.missions)
	return true
}

func (s *State) CurrentUser() (CurrentUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return CurrentUser{}, false
	}
	return *s.currentUser, true
}

// SetCurrentUser stores the display identity; nil clears it.
func (s *State) SetCurrentUser(ctx context.Context, u *CurrentUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.currentUser = nil
	} else {
		cp := *u
		s.currentUser = &cp
	}
	s.store.Save(ctx, s.key(snapshot.SessionCurrentUser), s.currentUser)
}

// RememberedEmail is the identifier prefilled on the login form.
func (s *State) RememberedEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rememberedEmail
}

func (s *State) SetRememberedEmail(ctx context.Context, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rememberedEmail = strings.TrimSpace(email)
	s.store.Save(ctx, s.key(snapshot.SessionRememberMe), s.rememberedEmail)
}

func flag(v bool) string {
	if v {
		return flagActive
	}
	return flagInactive
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}

// dedupeCart merges duplicate ids and drops non-positive quantities from stored data.
func dedupeCart(in []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(in))
	index := make(map[string]int, len(in))
	for _, item := range in {
		if item.Quantity < 1 || item.ID == "" {
			continue
		}
		if i, ok := index[item.ID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

func dedupeWishlist(in []models.Product) []models.Product {
	out := make([]models.Product, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, p := range in {
		if _, ok := seen[p.ID]; ok || p.ID == "" {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
