package config

// EnvPrefix is handed to envconfig; every field carries an explicit VIDLY_* tag.
const EnvPrefix = "VIDLY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv       = "VIDLY_APP_ENV"
	EnvPort         = "VIDLY_APP_PORT"
	EnvLogLevel     = "VIDLY_LOG_LEVEL"
	EnvDBDSN        = "VIDLY_DB_DSN"
	EnvDBSQLitePath = "VIDLY_DB_SQLITE_PATH"
	EnvDBHost       = "VIDLY_DB_HOST"
	EnvDBUser       = "VIDLY_DB_USER"
	EnvDBName       = "VIDLY_DB_NAME"
	EnvDBPassword   = "VIDLY_DB_PASSWORD"
	EnvDBTxTimeout  = "VIDLY_DB_TX_TIMEOUT"
	EnvRedisURL     = "VIDLY_REDIS_URL"
	EnvJWTSecret    = "VIDLY_JWT_SECRET"
	EnvJWTIssuer    = "VIDLY_JWT_ISSUER"
	EnvJWTExpMins   = "VIDLY_JWT_EXPIRATION_MINUTES"
	EnvUseSQLite    = "VIDLY_USE_SQLITE"
	EnvFeeMultiplier = "VIDLY_RENTAL_FEE_MULTIPLIER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
