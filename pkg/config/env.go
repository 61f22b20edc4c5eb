package config

const EnvPrefix = "SUPERSTORE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	SnapshotBackendMemory = "memory"
	SnapshotBackendRedis  = "redis"
	SnapshotBackendSQL    = "sql"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv          = "SUPERSTORE_APP_ENV"
	EnvPort            = "SUPERSTORE_APP_PORT"
	EnvSnapshotBackend = "SUPERSTORE_SNAPSHOT_BACKEND"
	EnvDBDSN           = "SUPERSTORE_DB_DSN"
	EnvDBDriver        = "SUPERSTORE_DB_DRIVER"
	EnvDBHost          = "SUPERSTORE_DB_HOST"
	EnvDBUser          = "SUPERSTORE_DB_USER"
	EnvDBName          = "SUPERSTORE_DB_NAME"
	EnvRedisURL        = "SUPERSTORE_REDIS_URL"
	EnvRedisAddr       = "SUPERSTORE_REDIS_ADDR"
	EnvJWTSecret       = "SUPERSTORE_JWT_SECRET"
	EnvAdminPassword   = "SUPERSTORE_ADMIN_PASSWORD"
	EnvExchangeRate    = "SUPERSTORE_EXCHANGE_RATE"
	EnvCoinsPerUnit    = "SUPERSTORE_COINS_PER_UNIT"
	EnvCheckInCooldown = "SUPERSTORE_CHECKIN_COOLDOWN"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
