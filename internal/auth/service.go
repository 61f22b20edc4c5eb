package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/superstore-backend/internal/session"
	pkgAuth "github.com/angelmondragon/superstore-backend/pkg/auth"
	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	socialPasswordLength      = 24
)

// Service defines the login surface used by the storefront and admin controllers.
type Service interface {
	Login(ctx context.Context, sess *session.State, req LoginRequest) (*models.Customer, error)
	Signup(ctx context.Context, sess *session.State, req SignupRequest) (*models.Customer, error)
	SocialLogin(ctx context.Context, sess *session.State, account SocialAccount) (*models.Customer, error)
	Logout(ctx context.Context, sess *session.State)
	RememberedEmail(sess *session.State) string
	AdminLogin(ctx context.Context, sess *session.State, req AdminLoginRequest) (*AdminLoginResponse, error)
	AdminLogout(ctx context.Context, sess *session.State)
}

type customerDirectory interface {
	FindCustomerByIdentifier(identifier string) (models.Customer, bool)
	FindCustomerByEmail(email string) (models.Customer, bool)
	AddCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	SocialSettings() models.SocialSettings
	AdminProfile() models.AdminProfile
}

type codeVerifier interface {
	Verify(code string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Customers customerDirectory
	TwoFactor codeVerifier
	Clock     clock.Clock
	Logger    *logger.Logger
	JWT       config.JWTConfig
	Password  config.PasswordConfig
	Admin     config.AdminConfig
	Commerce  config.CommerceConfig
}

type service struct {
	customers customerDirectory
	twoFactor codeVerifier
	clock     clock.Clock
	logg      *logger.Logger
	jwtCfg    config.JWTConfig
	password  config.PasswordConfig
	admin     config.AdminConfig
	commerce  config.CommerceConfig
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Customers == nil {
		return nil, fmt.Errorf("customer directory is required")
	}
	if params.TwoFactor == nil {
		return nil, fmt.Errorf("two-factor verifier is required")
	}
	if params.Password.MinLength <= 0 {
		params.Password.MinLength = 6
	}
	return &service{
		customers: params.Customers,
		twoFactor: params.TwoFactor,
		clock:     clock.OrDefault(params.Clock),
		logg:      params.Logger,
		jwtCfg:    params.JWT,
		password:  params.Password,
		admin:     params.Admin,
		commerce:  params.Commerce,
	}, nil
}

func (s *service) Login(ctx context.Context, sess *session.State, req LoginRequest) (*models.Customer, error) {
	identifier := strings.TrimSpace(req.Identifier)
	customer, ok := s.customers.FindCustomerByIdentifier(identifier)
	if !ok {
		return nil, s.reject(ctx, sess, enums.LoginFailureNoAccount)
	}
	match, err := security.VerifyCredential(req.Password, customer.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential")
	}
	if !match {
		return nil, s.reject(ctx, sess, enums.LoginFailureWrongPassword)
	}
	if customer.IsBlocked() {
		return nil, s.reject(ctx, sess, enums.LoginFailureBlocked)
	}

	s.establish(ctx, sess, customer)
	if req.RememberMe {
		sess.SetRememberedEmail(ctx, identifier)
	} else {
		sess.SetRememberedEmail(ctx, "")
	}
	return &customer, nil
}

func (s *service) reject(ctx context.Context, sess *session.State, reason enums.LoginFailure) error {
	logCtx := s.logg.WithFields(ctx, map[string]any{"session_id": sess.ID(), "reason": reason})
	s.logg.Info(logCtx, "customer login rejected")
	return &LoginError{Reason: reason}
}

// establish logs the session in as customer and loads the wallet from the customer record.
func (s *service) establish(ctx context.Context, sess *session.State, customer models.Customer) {
	sess.SetLoggedIn(ctx, true)
	sess.SetCurrentUser(ctx, &session.CurrentUser{
		CustomerID: customer.ID,
		Name:       customer.Name,
		Email:      customer.Email,
		Avatar:     customer.Avatar,
	})
	sess.UpdateCoins(ctx, func(int64) int64 { return customer.Coins })
	s.logg.Info(s.logg.WithCustomerID(s.logg.WithSessionID(ctx, sess.ID()), customer.ID), "customer logged in")
}

func (s *service) Signup(ctx context.Context, sess *session.State, req SignupRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and email are required")
	}
	if len(req.Password) < s.password.MinLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", s.password.MinLength))
	}
	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	if _, exists := s.customers.FindCustomerByEmail(email); exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	customer, err := s.customers.AddCustomer(ctx, models.Customer{
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Password: hash,
		Status:   enums.CustomerStatusActive,
		Coins:    s.commerce.CustomerSeedCoins,
	})
	if err != nil {
		return nil, err
	}
	s.establish(ctx, sess, customer)
	return &customer, nil
}

func (s *service) SocialLogin(ctx context.Context, sess *session.State, account SocialAccount) (*models.Customer, error) {
	if err := s.validateSocial(account); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(account.Email)
	customer, ok := s.customers.FindCustomerByEmail(email)
	if ok && customer.SocialProvider != account.Provider {
		return nil, s.reject(ctx, sess, enums.LoginFailureProviderMismatch)
	}
	if ok && customer.IsBlocked() {
		return nil, s.reject(ctx, sess, enums.LoginFailureBlocked)
	}
	if !ok {
		temp, err := security.GenerateTempPassword(socialPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate password")
		}
		hash, err := security.HashPassword(temp, s.password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		customer, err = s.customers.AddCustomer(ctx, models.Customer{
			Name:     strings.TrimSpace(account.Name),
			Email:    email,
			Password: hash,
			Avatar:   account.Avatar,
			Status:   enums.CustomerStatusActive,
			Coins:    s.commerce.CustomerSeedCoins,

			SocialProvider: account.Provider,
		})
		if err != nil {
			return nil, err
		}
	}
	s.establish(ctx, sess, customer)
	return &customer, nil
}

func (s *service) validateSocial(account SocialAccount) error {
	if !account.Provider.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unsupported social provider")
	}
	if strings.TrimSpace(account.Email) == "" || strings.TrimSpace(account.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "social account requires name and email")
	}
	settings := s.customers.SocialSettings()
	enabled := false
	switch account.Provider {
	case enums.SocialProviderGoogle:
		enabled = settings.GoogleEnabled
	case enums.SocialProviderFacebook:
		enabled = settings.FacebookEnabled
	}
	if !enabled {
		return pkgerrors.New(pkgerrors.CodeForbidden, "social provider is disabled").
			WithDetails(map[string]any{"provider": account.Provider})
	}
	return nil
}

// Logout clears the login flag and display identity. Cart and wishlist stay.
func (s *service) Logout(ctx context.Context, sess *session.State) {
	sess.SetLoggedIn(ctx, false)
	sess.SetCurrentUser(ctx, nil)
	s.logg.Info(s.logg.WithSessionID(ctx, sess.ID()), "customer logged out")
}

func (s *service) RememberedEmail(sess *session.State) string {
	return sess.RememberedEmail()
}

func (s *service) AdminLogin(ctx context.Context, sess *session.State, req AdminLoginRequest) (*AdminLoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.EqualFold(email, s.admin.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	match, err := security.VerifyCredential(req.Password, s.admin.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if err := s.twoFactor.Verify(req.OTPCode); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		Subject:   s.admin.Email,
		SessionID: sess.ID(),
		Role:      enums.ActorRoleAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	sess.SetAdmin(ctx, true)
	s.logg.Info(s.logg.WithSessionID(ctx, sess.ID()), "admin logged in")

	profile := s.customers.AdminProfile()
	profile.TwoFactorSecret = ""
	return &AdminLoginResponse{
		AccessToken: token,
		ExpiresAt:   now.Add(s.jwtCfg.TTL()),
		Profile:     profile,
	}, nil
}

func (s *service) AdminLogout(ctx context.Context, sess *session.State) {
	sess.SetAdmin(ctx, false)
	s.logg.Info(s.logg.WithSessionID(ctx, sess.ID()), "admin logged out")
}
