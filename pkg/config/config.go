package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.DB.resolveDriver()
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VIDEOTEKA_APP_ENV" default:"dev"`
	Port         string `envconfig:"VIDEOTEKA_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"VIDEOTEKA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VIDEOTEKA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// URL selects the backing store. Postgres DSNs are passed through;
	// anything else is treated as a sqlite file path, with the
	// sqlite:///path form accepted for compatibility with older deploys.
	URL    string `envconfig:"VIDEOTEKA_DATABASE_URL"`
	Driver string `envconfig:"VIDEOTEKA_DB_DRIVER"`

	MaxOpenConns    int           `envconfig:"VIDEOTEKA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VIDEOTEKA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VIDEOTEKA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VIDEOTEKA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

const defaultSQLitePath = "videoteka.db"

// DSN returns the driver-specific connection string.
func (db DBConfig) DSN() string {
	if db.Driver == DriverPostgres {
		return db.URL
	}
	path := db.URL
	if path == "" {
		return defaultSQLitePath
	}
	if strings.HasPrefix(path, "sqlite:///") {
		return strings.TrimPrefix(path, "sqlite:///")
	}
	return path
}

func (db *DBConfig) resolveDriver() {
	if db.Driver != "" {
		return
	}
	if strings.HasPrefix(db.URL, "postgres://") || strings.HasPrefix(db.URL, "postgresql://") {
		db.Driver = DriverPostgres
		return
	}
	db.Driver = DriverSQLite
}

type JWTConfig struct {
	Secret            string `envconfig:"VIDEOTEKA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VIDEOTEKA_JWT_ISSUER" default:"videoteka"`
	ExpirationMinutes int    `envconfig:"VIDEOTEKA_JWT_EXPIRATION_MINUTES" default:"30"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VIDEOTEKA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VIDEOTEKA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VIDEOTEKA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VIDEOTEKA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VIDEOTEKA_ARGON_KEY_LEN" default:"32"`
}

type RedisConfig struct {
	// URL is optional; when empty the auth rate limiter is disabled.
	URL          string        `envconfig:"VIDEOTEKA_REDIS_URL"`
	PoolSize     int           `envconfig:"VIDEOTEKA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VIDEOTEKA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VIDEOTEKA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VIDEOTEKA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VIDEOTEKA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"VIDEOTEKA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"VIDEOTEKA_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"VIDEOTEKA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"VIDEOTEKA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"VIDEOTEKA_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"VIDEOTEKA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VIDEOTEKA_AUTO_MIGRATE" default:"true"`
	SeedCatalog bool `envconfig:"VIDEOTEKA_SEED_CATALOG" default:"true"`
}
