package storefront

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/superstore-backend/internal/auth"
	"github.com/angelmondragon/superstore-backend/internal/cart"
	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/internal/checkout"
	"github.com/angelmondragon/superstore-backend/internal/coins"
	"github.com/angelmondragon/superstore-backend/internal/currency"
	"github.com/angelmondragon/superstore-backend/internal/session"
	"github.com/angelmondragon/superstore-backend/internal/snapshot"
	"github.com/angelmondragon/superstore-backend/internal/twofactor"
	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/metrics"
)

// Params wires a Store. Snapshots is shared by the catalog and every session.
type Params struct {
	Snapshots *snapshot.Store
	Config    *config.Config
	Clock     clock.Clock
	Metrics   *metrics.StoreMetrics
	Logger    *logger.Logger
	Prompter  cart.LoginPrompter
}

// Store is composed once per process and hands out per-session engines.
type Store struct {
	catalog   *catalog.Repository
	sessions  *session.Manager
	currency  *currency.Service
	twoFactor *twofactor.Service
	auth      auth.Service

	clock    clock.Clock
	commerce config.CommerceConfig
	metrics  *metrics.StoreMetrics
	logg     *logger.Logger
	prompter cart.LoginPrompter
}

func New(ctx context.Context, params Params) (*Store, error) {
	if params.Snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if params.Config == nil {
		return nil, fmt.Errorf("config required")
	}
	cfg := params.Config
	clk := clock.OrDefault(params.Clock)

	repo, err := catalog.Load(ctx, catalog.Params{
		Store:      params.Snapshots,
		Logger:     params.Logger,
		Clock:      clk,
		Commerce:   cfg.Commerce,
		AdminEmail: cfg.Admin.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	currencySvc, err := currency.NewService(cfg.Commerce.ExchangeRate)
	if err != nil {
		return nil, err
	}
	twoFactorSvc, err := twofactor.NewService(cfg.TwoFactor, repo, clk, params.Logger)
	if err != nil {
		return nil, err
	}
	authSvc, err := auth.NewService(auth.ServiceParams{
		Customers: repo,
		TwoFactor: twoFactorSvc,
		Clock:     clk,
		Logger:    params.Logger,
		JWT:       cfg.JWT,
		Password:  cfg.Password,
		Admin:     cfg.Admin,
		Commerce:  cfg.Commerce,
	})
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewManager(params.Snapshots, session.Defaults{
		WalletSeed: cfg.Commerce.WalletSeed,
		Currency:   enums.CurrencyBDT,
	}, cfg.App.SessionCacheSize)
	if err != nil {
		return nil, err
	}

	return &Store{
		catalog:   repo,
		sessions:  sessions,
		currency:  currencySvc,
		twoFactor: twoFactorSvc,
		auth:      authSvc,
		clock:     clk,
		commerce:  cfg.Commerce,
		metrics:   params.Metrics,
		logg:      params.Logger,
		prompter:  params.Prompter,
	}, nil
}

func (s *Store) Catalog() *catalog.Repository {
	return s.catalog
}

func (s *Store) Currency() *currency.Service {
	return s.currency
}

func (s *Store) TwoFactor() *twofactor.Service {
	return s.twoFactor
}

func (s *Store) Auth() auth.Service {
	return s.auth
}

func (s *Store) Clock() clock.Clock {
	return s.clock
}

// Open returns the engines bound to sessionID, loading its state on first use.
// The session stays pinned in memory until Close.
func (s *Store) Open(ctx context.Context, sessionID string) (sess *Session, err error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			s.sessions.Release(sessionID)
		}
	}()
	cartEngine := cart.NewEngine(state, s.prompter, s.logg)
	coinEngine, err := coins.NewEngine(coins.Params{
		State:    state,
		Ledger:   s.catalog,
		Clock:    s.clock,
		Commerce: s.commerce,
		Metrics:  s.metrics,
		Logger:   s.logg,
	})
	if err != nil {
		return nil, err
	}
	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{
		Session:  state,
		Cart:     cartEngine,
		Coins:    coinEngine,
		Orders:   s.catalog,
		Clock:    s.clock,
		Commerce: s.commerce,
		Metrics:  s.metrics,
		Logger:   s.logg,
	})
	if err != nil {
		return nil, err
	}
	return &Session{
		State:    state,
		Cart:     cartEngine,
		Coins:    coinEngine,
		Checkout: checkoutSvc,
		store:    s,
		id:       sessionID,
	}, nil
}

// CachedSessions reports how many sessions are held in memory.
func (s *Store) CachedSessions() int {
	return s.sessions.Len()
}

// Session bundles one shopper's engines.
type Session struct {
	State    *session.State
	Cart     *cart.Engine
	Coins    *coins.Engine
	Checkout checkout.Service

	store     *Store
	id        string
	closeOnce sync.Once
}

func (s *Session) ID() string {
	return s.State.ID()
}

// Close unpins the session so it can be evicted once idle.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.store.sessions.Release(s.id)
	})
}

func (s *Session) Login(ctx context.Context, req auth.LoginRequest) (*models.Customer, error) {
	return s.store.auth.Login(ctx, s.State, req)
}

func (s *Session) Signup(ctx context.Context, req auth.SignupRequest) (*models.Customer, error) {
	return s.store.auth.Signup(ctx, s.State, req)
}

func (s *Session) SocialLogin(ctx context.Context, account auth.SocialAccount) (*models.Customer, error) {
	return s.store.auth.SocialLogin(ctx, s.State, account)
}

func (s *Session) Logout(ctx context.Context) {
	s.store.auth.Logout(ctx, s.State)
}

func (s *Session) AdminLogin(ctx context.Context, req auth.AdminLoginRequest) (*auth.AdminLoginResponse, error) {
	return s.store.auth.AdminLogin(ctx, s.State, req)
}

func (s *Session) AdminLogout(ctx context.Context) {
	s.store.auth.AdminLogout(ctx, s.State)
}

// FormatPrice renders a base-currency amount in the session's selected currency.
func (s *Session) FormatPrice(amount int64) string {
	return s.store.currency.FormatInt(amount, s.State.Currency())
}

// FormatAmount is FormatPrice for fractional totals.
func (s *Session) FormatAmount(amount decimal.Decimal) string {
	return s.store.currency.FormatFor(amount, s.State)
}
