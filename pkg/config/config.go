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
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Rentals       RentalsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		if cfg.DB.SQLitePath == "" {
			return nil, fmt.Errorf("%s is required when %s is enabled", EnvDBSQLitePath, EnvUseSQLite)
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VIDLY_APP_ENV" required:"true"`
	Port         string `envconfig:"VIDLY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VIDLY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VIDLY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"VIDLY_DB_DSN"`
	SQLitePath string `envconfig:"VIDLY_DB_SQLITE_PATH" default:"vidly.db"`

	LegacyHost     string `envconfig:"VIDLY_DB_HOST"`
	LegacyPort     int    `envconfig:"VIDLY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VIDLY_DB_USER"`
	LegacyPassword string `envconfig:"VIDLY_DB_PASSWORD"`
	LegacyName     string `envconfig:"VIDLY_DB_NAME"`
	LegacySSLMode  string `envconfig:"VIDLY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VIDLY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VIDLY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VIDLY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VIDLY_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// TxTimeout bounds every unit of work run through Client.WithTx. Zero disables it.
	TxTimeout time.Duration `envconfig:"VIDLY_DB_TX_TIMEOUT" default:"5s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VIDLY_REDIS_URL"`
	Address      string        `envconfig:"VIDLY_REDIS_ADDR"`
	Password     string        `envconfig:"VIDLY_REDIS_PASSWORD"`
	DB           int           `envconfig:"VIDLY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VIDLY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VIDLY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VIDLY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VIDLY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VIDLY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"VIDLY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VIDLY_JWT_ISSUER" default:"vidly"`
	ExpirationMinutes int    `envconfig:"VIDLY_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VIDLY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VIDLY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VIDLY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VIDLY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VIDLY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"VIDLY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"VIDLY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"VIDLY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"VIDLY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"VIDLY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"VIDLY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VIDLY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VIDLY_AUTO_MIGRATE" default:"false"`
}

type RentalsConfig struct {
	FeeMultiplier int `envconfig:"VIDLY_RENTAL_FEE_MULTIPLIER" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
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
