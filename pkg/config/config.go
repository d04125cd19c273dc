package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Env var names referenced outside struct tags (tests, error messages).
const (
	EnvAppEnv        = "TRACKDAY_APP_ENV"
	EnvPort          = "TRACKDAY_APP_PORT"
	EnvDBDSN         = "TRACKDAY_DB_DSN"
	EnvDBHost        = "TRACKDAY_DB_HOST"
	EnvDBUser        = "TRACKDAY_DB_USER"
	EnvDBName        = "TRACKDAY_DB_NAME"
	EnvRedisURL      = "TRACKDAY_REDIS_URL"
	EnvSessionSecret = "TRACKDAY_SESSION_SECRET"
	EnvSessionIssuer = "TRACKDAY_SESSION_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Flags    FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TRACKDAY_APP_ENV" required:"true"`
	Port         string `envconfig:"TRACKDAY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TRACKDAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRACKDAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TRACKDAY_DB_DSN"`
	Driver string `envconfig:"TRACKDAY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TRACKDAY_DB_HOST"`
	LegacyPort     int    `envconfig:"TRACKDAY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TRACKDAY_DB_USER"`
	LegacyPassword string `envconfig:"TRACKDAY_DB_PASSWORD"`
	LegacyName     string `envconfig:"TRACKDAY_DB_NAME"`
	LegacySSLMode  string `envconfig:"TRACKDAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRACKDAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRACKDAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRACKDAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRACKDAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TRACKDAY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TRACKDAY_REDIS_ADDR"`
	Password     string        `envconfig:"TRACKDAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRACKDAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRACKDAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRACKDAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRACKDAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRACKDAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRACKDAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives the signed checkout-session token.
type SessionConfig struct {
	Secret   string `envconfig:"TRACKDAY_SESSION_SECRET" required:"true"`
	Issuer   string `envconfig:"TRACKDAY_SESSION_ISSUER" required:"true"`
	TTLHours int    `envconfig:"TRACKDAY_SESSION_TTL_HOURS" default:"48"`
}

// TTL returns the checkout session lifetime.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLHours <= 0 {
		return 0
	}
	return time.Duration(s.TTLHours) * time.Hour
}

type CheckoutConfig struct {
	SelectionTTL   time.Duration `envconfig:"TRACKDAY_CHECKOUT_SELECTION_TTL" default:"48h"`
	CurrencySymbol string        `envconfig:"TRACKDAY_CHECKOUT_CURRENCY_SYMBOL" default:"$"`
	SyncWindow     time.Duration `envconfig:"TRACKDAY_CHECKOUT_SYNC_WINDOW" default:"1m"`
	SyncLimit      int           `envconfig:"TRACKDAY_CHECKOUT_SYNC_LIMIT" default:"60"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TRACKDAY_AUTO_MIGRATE" default:"false"`
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
