package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Snapshot      SnapshotConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Admin         AdminConfig
	TwoFactor     TwoFactorConfig
	AuthRateLimit AuthRateLimitConfig
	Commerce      CommerceConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Snapshot.validate(); err != nil {
		return nil, err
	}
	if cfg.Snapshot.Backend == SnapshotBackendSQL {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Snapshot.Backend == SnapshotBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("either %s or %s is required for the redis snapshot backend", EnvRedisURL, EnvRedisAddr)
	}
	if err := cfg.Commerce.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"SUPERSTORE_APP_ENV" required:"true"`
	Port         string   `envconfig:"SUPERSTORE_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"SUPERSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"SUPERSTORE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"SUPERSTORE_CORS_ORIGINS"`

	// SessionCacheSize caps idle sessions kept in memory; evicted ones reload from snapshots.
	SessionCacheSize int `envconfig:"SUPERSTORE_SESSION_CACHE_SIZE" default:"10000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SnapshotConfig selects where JSON snapshots are kept.
type SnapshotConfig struct {
	Backend   string `envconfig:"SUPERSTORE_SNAPSHOT_BACKEND" default:"memory"`
	Namespace string `envconfig:"SUPERSTORE_SNAPSHOT_NAMESPACE" default:"sf"`
}

func (s *SnapshotConfig) validate() error {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case SnapshotBackendMemory, SnapshotBackendRedis, SnapshotBackendSQL:
		return nil
	}
	return fmt.Errorf("invalid snapshot backend %q", s.Backend)
}

type DBConfig struct {
	DSN         string `envconfig:"SUPERSTORE_DB_DSN"`
	Driver      string `envconfig:"SUPERSTORE_DB_DRIVER" default:"postgres"`
	AutoMigrate bool   `envconfig:"SUPERSTORE_DB_AUTO_MIGRATE" default:"true"`

	LegacyHost     string `envconfig:"SUPERSTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"SUPERSTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SUPERSTORE_DB_USER"`
	LegacyPassword string `envconfig:"SUPERSTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SUPERSTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SUPERSTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SUPERSTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SUPERSTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SUPERSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SUPERSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"SUPERSTORE_REDIS_URL"`
	Address      string        `envconfig:"SUPERSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"SUPERSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SUPERSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SUPERSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SUPERSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SUPERSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SUPERSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SUPERSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SUPERSTORE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SUPERSTORE_JWT_ISSUER" default:"superstore"`
	ExpirationMinutes int    `envconfig:"SUPERSTORE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TTL is the lifetime of minted access tokens.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SUPERSTORE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SUPERSTORE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SUPERSTORE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SUPERSTORE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SUPERSTORE_ARGON_KEY_LEN" default:"32"`
	MinLength        int `envconfig:"SUPERSTORE_PASSWORD_MIN_LENGTH" default:"6"`
}

// AdminConfig holds the bootstrap admin credentials checked by the admin login.
type AdminConfig struct {
	Email    string `envconfig:"SUPERSTORE_ADMIN_EMAIL" default:"admin@superstore.com"`
	Password string `envconfig:"SUPERSTORE_ADMIN_PASSWORD" required:"true"`
}

type TwoFactorConfig struct {
	Issuer string `envconfig:"SUPERSTORE_2FA_ISSUER" default:"SuperStore"`
	Skew   uint   `envconfig:"SUPERSTORE_2FA_SKEW" default:"1"`
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"SUPERSTORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginLimit   int           `envconfig:"SUPERSTORE_AUTH_RATE_LIMIT_LOGIN_LIMIT" default:"10"`
	LoginIPLimit int           `envconfig:"SUPERSTORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"30"`
}

// CommerceConfig carries the store's pricing and loyalty constants.
type CommerceConfig struct {
	ExchangeRate          int64         `envconfig:"SUPERSTORE_EXCHANGE_RATE" default:"120"`
	FreeShippingThreshold int64         `envconfig:"SUPERSTORE_FREE_SHIPPING_THRESHOLD" default:"1000"`
	ShippingFee           int64         `envconfig:"SUPERSTORE_SHIPPING_FEE" default:"25"`
	CoinsPerUnit          int64         `envconfig:"SUPERSTORE_COINS_PER_UNIT" default:"100"`
	WalletSeed            int64         `envconfig:"SUPERSTORE_WALLET_SEED" default:"2100"`
	CustomerSeedCoins     int64         `envconfig:"SUPERSTORE_CUSTOMER_SEED_COINS" default:"500"`
	CheckInReward         int64         `envconfig:"SUPERSTORE_CHECKIN_REWARD" default:"200"`
	CheckInCooldown       time.Duration `envconfig:"SUPERSTORE_CHECKIN_COOLDOWN" default:"24h"`
	CountdownTick         time.Duration `envconfig:"SUPERSTORE_COUNTDOWN_TICK" default:"1s"`
	SeedProductCount      int           `envconfig:"SUPERSTORE_SEED_PRODUCT_COUNT" default:"1000"`
}

// DefaultCommerce returns the commerce constants without consulting the environment.
func DefaultCommerce() CommerceConfig {
	return CommerceConfig{
		ExchangeRate:          120,
		FreeShippingThreshold: 1000,
		ShippingFee:           25,
		CoinsPerUnit:          100,
		WalletSeed:            2100,
		CustomerSeedCoins:     500,
		CheckInReward:         200,
		CheckInCooldown:       24 * time.Hour,
		CountdownTick:         time.Second,
		SeedProductCount:      1000,
	}
}

func (c CommerceConfig) validate() error {
	if c.ExchangeRate <= 0 {
		return fmt.Errorf("%s must be positive", EnvExchangeRate)
	}
	if c.CoinsPerUnit <= 0 {
		return fmt.Errorf("%s must be positive", EnvCoinsPerUnit)
	}
	if c.ShippingFee < 0 || c.FreeShippingThreshold < 0 {
		return fmt.Errorf("shipping settings must be non-negative")
	}
	if c.CheckInCooldown <= 0 {
		return fmt.Errorf("%s must be positive", EnvCheckInCooldown)
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
