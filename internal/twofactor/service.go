package twofactor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

const period = 30

// ErrInvalidCode rejects a one-time code outside the accepted window.
var ErrInvalidCode = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid verification code")

type profileStore interface {
	AdminProfile() models.AdminProfile
	SetAdminProfile(ctx context.Context, profile models.AdminProfile)
}

// Secret is a freshly generated TOTP secret and its provisioning URL.
type Secret struct {
	Secret string `json:"secret"`
	URL    string `json:"otpauthUrl"`
}

// Service validates admin one-time codes. It only reads and writes the admin profile.
type Service struct {
	cfg      config.TwoFactorConfig
	profiles profileStore
	clock    clock.Clock
	logg     *logger.Logger
}

func NewService(cfg config.TwoFactorConfig, profiles profileStore, clk clock.Clock, logg *logger.Logger) (*Service, error) {
	if profiles == nil {
		return nil, fmt.Errorf("admin profile store required")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "SuperStore"
	}
	return &Service{cfg: cfg, profiles: profiles, clock: clock.OrDefault(clk), logg: logg}, nil
}

// GenerateSecret creates a new secret for account without enabling it.
func (s *Service) GenerateSecret(account string) (*Secret, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account is required")
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.cfg.Issuer,
		AccountName: account,
		Period:      period,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate totp secret")
	}
	return &Secret{Secret: key.Secret(), URL: key.URL()}, nil
}

// Validate checks code against secret at the given time, allowing the configured skew.
func (s *Service) Validate(secret, code string, at time.Time) bool {
	code = normalizeCode(code)
	if secret == "" || code == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    period,
		Skew:      s.cfg.Skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

func (s *Service) Enabled() bool {
	return s.profiles.AdminProfile().TwoFactorEnabled
}

// Verify accepts any code while 2FA is off and otherwise checks it against the stored secret.
func (s *Service) Verify(code string) error {
	profile := s.profiles.AdminProfile()
	if !profile.TwoFactorEnabled {
		return nil
	}
	if !s.Validate(profile.TwoFactorSecret, code, s.clock.Now()) {
		return ErrInvalidCode
	}
	return nil
}

// Enable stores secret once code proves the authenticator is set up.
func (s *Service) Enable(ctx context.Context, secret, code string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "secret is required")
	}
	if !s.Validate(secret, code, s.clock.Now()) {
		return ErrInvalidCode
	}
	profile := s.profiles.AdminProfile()
	profile.TwoFactorEnabled = true
	profile.TwoFactorSecret = secret
	s.profiles.SetAdminProfile(ctx, profile)
	s.logg.Info(ctx, "admin two-factor enabled")
	return nil
}

// Disable clears the stored secret after a valid code.
func (s *Service) Disable(ctx context.Context, code string) error {
	if err := s.Verify(code); err != nil {
		return err
	}
	profile := s.profiles.AdminProfile()
	profile.TwoFactorEnabled = false
	profile.TwoFactorSecret = ""
	s.profiles.SetAdminProfile(ctx, profile)
	s.logg.Info(ctx, "admin two-factor disabled")
	return nil
}

func normalizeCode(code string) string {
	code = strings.ReplaceAll(code, " ", "")
	return strings.ReplaceAll(code, "-", "")
}
