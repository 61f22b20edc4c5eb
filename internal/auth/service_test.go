package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/superstore-backend/internal/catalog"
	"github.com/angelmondragon/superstore-backend/internal/session"
	"github.com/angelmondragon/superstore-backend/internal/snapshot"
	pkgAuth "github.com/angelmondragon/superstore-backend/pkg/auth"
	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/security"
)

type stubVerifier struct {
	err error
}

func (s stubVerifier) Verify(string) error {
	return s.err
}

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "superstore", ExpirationMinutes: 30}

type fixture struct {
	svc   Service
	repo  *catalog.Repository
	state *session.State
}

func buildTestService(t *testing.T, verifier codeVerifier) fixture {
	t.Helper()
	ctx := context.Background()
	store, err := snapshot.NewStore(snapshot.StoreParams{Backend: snapshot.NewMemoryBackend()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	commerce := config.DefaultCommerce()
	commerce.SeedProductCount = 4
	clk := clock.NewManual(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	repo, err := catalog.Load(ctx, catalog.Params{Store: store, Clock: clk, Commerce: commerce})
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	state, err := session.Open(ctx, store, "s1", session.Defaults{WalletSeed: commerce.WalletSeed, Currency: enums.CurrencyBDT})
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Customers: repo,
		TwoFactor: verifier,
		Clock:     clk,
		JWT:       testJWT,
		Password: config.PasswordConfig{
			ArgonMemoryKB:    64,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
			MinLength:        6,
		},
		Admin:    config.AdminConfig{Email: "admin@superstore.com", Password: "admin123"},
		Commerce: commerce,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return fixture{svc: svc, repo: repo, state: state}
}

func TestLoginByEmailLoadsWallet(t *testing.T) {
	f := buildTestService(t, stubVerifier{})
	ctx := context.Background()

	customer, err := f.svc.Login(ctx, f.state, LoginRequest{Identifier: "MD4518199@gmail.com", Password: "password123", RememberMe: true})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if customer.ID != "c1" {
		t.Fatalf("unexpected customer %s", customer.ID)
	}
	if !f.state.IsLoggedIn() || f.state.Coins() != 4500 {
		t.Fatalf("expected logged-in session with wallet 4500, got %v/%d", f.state.IsLoggedIn(), f.state.Coins())
	}
	user, ok := f.state.CurrentUser()
	if !ok || user.CustomerID != "c1" || user.Name != "Md Samiul" {
		t.Fatalf("unexpected current user %+v", user)
	}
	if got := f.svc.RememberedEmail(f.state); got != "MD4518199@gmail.com" {
		t.Fatalf("expected remembered identifier, got %q", got)
	}
}

func TestLoginByPhone(t *testing.T) {
	f := buildTestService(t, stubVerifier{})
	if _, err := f.svc.Login(context.Background(), f.state, LoginRequest{Identifier: "01711111111", Password: "password123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if f.svc.RememberedEmail(f.state) != "" {
		t.Fatal("remember me off must clear the remembered identifier")
	}
}

func TestLoginFailures(t *testing.T) {
	f := buildTestService(t, stubVerifier{})
	ctx := context.Background()

	_, err := f.svc.Login(ctx, f.state, LoginRequest{Identifier: "nobody@example.com", Password: "x"})
	if reason, ok := LoginFailureOf(err); !ok || reason != enums.LoginFailureNoAccount {
		t.Fatalf("expected no_account, got %v", err)
	}

	_, err = f.svc.Login(ctx, f.state, LoginRequest{Identifier: "md4518199@gmail.com", Password: "wrong"})
	if reason, ok := LoginFailureOf(err); !ok || reason != enums.LoginFailureWrongPassword {
		t.Fatalf("expected wrong_password, got %v", err)
	}

	if _, err := f.repo.ToggleCustomerBlock(ctx, "c1"); err != nil {
		t.Fatalf("ToggleCustomerBlock: %v", err)
	}
	_, err = f.svc.Login(ctx, f.state, LoginRequest{Identifier: "md4518199@gmail.com", Password: "password123"})
	if reason, ok := LoginFailureOf(err); !ok || reason != enums.LoginFailureBlocked {
		t.Fatalf("expected blocked, got %v", err)
	}
	if f.state.IsLoggedIn() {
		t.Fatal("rejected logins must not log the session in")
	}
}

func TestSignup(t *testing.T) {
	f := buildTestService(t, stubVerifier{})
	ctx := context.Background()
	req := SignupRequest{Name: "Nadia Islam", Email: "nadia@example.com", Phone: "01822222222", Password: "secret1", ConfirmPassword: "secret1"}

	short := req
	short.Password, short.ConfirmPassword = "abc", "abc"
	if _, err := f.svc.Signup(ctx, f.state, short); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
	mismatch := req
	mismatch.ConfirmPassword = "secret2"
	if _, err := f.svc.Signup(ctx, f.state, mismatch); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for mismatch, got %v", err)
	}
	dup := req
	dup.Email = "MD4518199@gmail.com"
	if _, err := f.svc.Signup(ctx, f.state, dup); !pkgerrors.Is(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}

	customer, err := f.svc.Signup(ctx, f.state, req)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if !security.IsHash(customer.Password) {
		t.Fatal("expected stored password to be hashed")
	}
	if customer.Coins != 500 || f.state.Coins() != 500 {
		t.Fatalf("expected default coins 500, got %d/%d", customer.Coins, f.state.Coins())
	}
	if !f.state.IsLoggedIn() {
		t.Fatal("signup should log the session in")
	}

	f.svc.Logout(ctx, f.state)
	if _, err := f.svc.Login(ctx, f.state, LoginRequest{Identifier: "nadia@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("login with new account: %v", err)
	}
}

func TestSocialLogin(t *testing.T) {
	f := buildTestService(t, stubVerifier{})
	ctx := context.Background()

	account := SocialAccount{Provider: enums.SocialProviderGoogle, Name: "Karim", Email: "karim@example.com", Avatar: "https://example.com/k.png"}
	customer, err := f.svc.SocialLogin(ctx, f.state, account)
	if err != nil {
		t.Fatalf("SocialLogin: %v", err)
	}
	if customer.Avatar != account.Avatar || !f.state.IsLoggedIn() {
		t.Fatalf("unexpected social customer %+v", customer)
	}
	before := len(f.repo.Customers())
	again, err := f.svc.SocialLogin(ctx, f.state, account)
	if err != nil || again.ID != customer.ID || len(f.repo.Customers()) != before {
		t.Fatalf("expected existing customer reused, err=%v", err)
	}

	if customer.SocialProvider != enums.SocialProviderGoogle {
		t.Fatalf("expected account linked to google, got %q", customer.SocialProvider)
	}

	f.repo.SetSocialSettings(ctx, models.SocialSettings{GoogleEnabled: false, FacebookEnabled: true})
	if _, err := f.svc.SocialLogin(ctx, f.state, account); !pkgerrors.Is(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected disabled provider rejected, got %v", err)
	}
	if _, err := f.svc.SocialLogin(ctx, f.state, SocialAccount{Provider: "twitter", Name: "x", Email: "x@example.com"}); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected unknown provider rejected, got %v", err)
	}
}

func TestSocialLoginRequiresLinkedProvider(t *testing.T) {
	f := buildTestService(t, stubVerifier{})
	ctx := context.Background()

	spoofed := SocialAccount{Provider: enums.SocialProviderGoogle, Name: "Anyone", Email: "md4518199@gmail.com"}
	_, err := f.svc.SocialLogin(ctx, f.state, spoofed)
	if reason, ok := LoginFailureOf(err); !ok || reason != enums.LoginFailureProviderMismatch {
		t.Fatalf("expected provider mismatch for password account, got %v", err)
	}
	if f.state.IsLoggedIn() {
		t.Fatal("session must stay logged out")
	}

	account := SocialAccount{Provider: enums.SocialProviderFacebook, Name: "Rafi", Email: "rafi@example.com"}
	if _, err := f.svc.SocialLogin(ctx, f.state, account); err != nil {
		t.Fatalf("SocialLogin: %v", err)
	}
	f.svc.Logout(ctx, f.state)
	account.Provider = enums.SocialProviderGoogle
	if _, err := f.svc.SocialLogin(ctx, f.state, account); err == nil {
		t.Fatal("expected a different provider to be rejected")
	}
}

func TestLogoutKeepsCart(t *testing.T) {
	f := buildTestService(t, stubVerifier{})
	ctx := context.Background()
	if _, err := f.svc.Login(ctx, f.state, LoginRequest{Identifier: "01711111111", Password: "password123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	f.state.UpdateCart(ctx, func(items []models.CartItem) []models.CartItem {
		return append(items, models.CartItem{Product: models.Product{ID: "p1", Price: 10}, Quantity: 1})
	})

	f.svc.Logout(ctx, f.state)
	if f.state.IsLoggedIn() {
		t.Fatal("expected logged out")
	}
	if _, ok := f.state.CurrentUser(); ok {
		t.Fatal("expected current user cleared")
	}
	if len(f.state.Cart()) != 1 {
		t.Fatal("logout must keep the cart")
	}
}

func TestAdminLogin(t *testing.T) {
	f := buildTestService(t, stubVerifier{})
	ctx := context.Background()

	if _, err := f.svc.AdminLogin(ctx, f.state, AdminLoginRequest{Email: "admin@superstore.com", Password: "nope"}); !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	resp, err := f.svc.AdminLogin(ctx, f.state, AdminLoginRequest{Email: "ADMIN@superstore.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Role != enums.ActorRoleAdmin || claims.SessionID != "s1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !f.state.IsAdmin() {
		t.Fatal("expected admin flag set")
	}
	if resp.Profile.TwoFactorSecret != "" {
		t.Fatal("profile must not expose the 2FA secret")
	}

	f.svc.AdminLogout(ctx, f.state)
	if f.state.IsAdmin() {
		t.Fatal("expected admin flag cleared")
	}
}

func TestAdminLoginRequiresSecondFactor(t *testing.T) {
	codeErr := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid verification code")
	f := buildTestService(t, stubVerifier{err: codeErr})

	_, err := f.svc.AdminLogin(context.Background(), f.state, AdminLoginRequest{Email: "admin@superstore.com", Password: "admin123"})
	if !errors.Is(err, codeErr) {
		t.Fatalf("expected 2FA rejection, got %v", err)
	}
	if f.state.IsAdmin() {
		t.Fatal("admin flag must stay off")
	}
}
