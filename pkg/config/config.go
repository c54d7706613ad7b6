package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "POKEVERSE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "POKEVERSE_DB_DSN"
	EnvDBHost = "POKEVERSE_DB_HOST"
	EnvDBUser = "POKEVERSE_DB_USER"
	EnvDBName = "POKEVERSE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	PokeAPI       PokeAPIConfig
	Mail          MailConfig
	Reap          ReapConfig
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
	Env          string `envconfig:"POKEVERSE_APP_ENV" required:"true"`
	Port         string `envconfig:"POKEVERSE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"POKEVERSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POKEVERSE_LOG_WARN_STACK" default:"false"`
	SiteURL      string `envconfig:"POKEVERSE_SITE_URL" default:"http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"POKEVERSE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"POKEVERSE_DB_DSN"`
	Driver string `envconfig:"POKEVERSE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"POKEVERSE_DB_HOST"`
	LegacyPort     int    `envconfig:"POKEVERSE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"POKEVERSE_DB_USER"`
	LegacyPassword string `envconfig:"POKEVERSE_DB_PASSWORD"`
	LegacyName     string `envconfig:"POKEVERSE_DB_NAME"`
	LegacySSLMode  string `envconfig:"POKEVERSE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"POKEVERSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"POKEVERSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"POKEVERSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POKEVERSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"POKEVERSE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"POKEVERSE_REDIS_ADDR"`
	Password     string        `envconfig:"POKEVERSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"POKEVERSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POKEVERSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POKEVERSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POKEVERSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POKEVERSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POKEVERSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig drives the token service. Session tokens are short-lived; the
// email-delivered tokens (password reset, signup verification) last a week.
type JWTConfig struct {
	Secret            string `envconfig:"POKEVERSE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"POKEVERSE_JWT_ISSUER" required:"true"`
	SessionTTLMinutes int    `envconfig:"POKEVERSE_JWT_SESSION_TTL_MINUTES" default:"60"`
	ResetTTLMinutes   int    `envconfig:"POKEVERSE_JWT_RESET_TTL_MINUTES" default:"10080"`
	VerifyTTLMinutes  int    `envconfig:"POKEVERSE_JWT_VERIFY_TTL_MINUTES" default:"10080"`
}

func (j JWTConfig) SessionTTL() time.Duration {
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

func (j JWTConfig) ResetTTL() time.Duration {
	return time.Duration(j.ResetTTLMinutes) * time.Minute
}

func (j JWTConfig) VerifyTTL() time.Duration {
	return time.Duration(j.VerifyTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"POKEVERSE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"POKEVERSE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"POKEVERSE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"POKEVERSE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"POKEVERSE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"POKEVERSE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"POKEVERSE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"POKEVERSE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"POKEVERSE_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"POKEVERSE_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"POKEVERSE_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"POKEVERSE_AUTO_MIGRATE" default:"false"`
}

type PokeAPIConfig struct {
	BaseURL string        `envconfig:"POKEVERSE_POKEAPI_BASE_URL" default:"https://pokeapi.co/api/v2"`
	Timeout time.Duration `envconfig:"POKEVERSE_POKEAPI_TIMEOUT" default:"10s"`
}

type MailConfig struct {
	ResendAPIKey string `envconfig:"POKEVERSE_RESEND_API_KEY"`
	FromEmail    string `envconfig:"POKEVERSE_MAIL_FROM" default:"noreply@pokeverse.space"`
}

// ReapConfig controls the pending-signup sweep in the cron worker.
type ReapConfig struct {
	PendingSignupTTL time.Duration `envconfig:"POKEVERSE_REAP_PENDING_SIGNUP_TTL" default:"168h"`
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
