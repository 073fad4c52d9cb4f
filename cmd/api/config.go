package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	authSupabase = "supabase"
	authLocal    = "local"

	storeSupabase = "supabase"
	storePostgres = "postgres"
)

// Config is read from APP_* environment variables and command line flags.
type Config struct {
	Port         string        `conf:"default:8080,env:PORT"`
	LogLevel     string        `conf:"default:info,env:LOG_LEVEL"`
	TimeZone     string        `conf:"default:UTC,env:TIME_ZONE"`
	Theme        string        `conf:"default:dark,env:THEME"`
	Auth         string        `conf:"default:supabase,env:AUTH"`
	Store        string        `conf:"default:supabase,env:STORE"`
	Table        string        `conf:"default:payment_intents,env:TABLE"`
	ReadTimeout  time.Duration `conf:"default:5s,env:READ_TIMEOUT"`
	WriteTimeout time.Duration `conf:"default:15s,env:WRITE_TIMEOUT"`

	SupabaseURL        string        `conf:"env:SUPABASE_URL"`
	SupabaseAnonKey    string        `conf:"env:SUPABASE_ANON_KEY,noprint"`
	SupabaseServiceKey string        `conf:"env:SUPABASE_SERVICE_KEY,noprint"`
	SupabaseJWTSecret  string        `conf:"env:SUPABASE_JWT_SECRET,noprint"`
	SupabaseTimeout    time.Duration `conf:"default:10s,env:SUPABASE_TIMEOUT"`

	DBCon      string        `conf:"default:user=ps_user password=ps_password dbname=backend sslmode=disable host=localhost,env:DB_CONN"`
	JWTKey     string        `conf:"default:your_secret_key,env:JWT_KEY,noprint"`
	AccessTTL  time.Duration `conf:"default:1h,env:ACCESS_TTL"`
	RefreshTTL time.Duration `conf:"default:720h,env:REFRESH_TTL"`

	RedisAddr     string        `conf:"env:REDIS_ADDR"`
	RedisPassword string        `conf:"env:REDIS_PASSWORD,noprint"`
	RedisDB       int           `conf:"default:0,env:REDIS_DB"`
	CacheTTL      time.Duration `conf:"default:30s,env:CACHE_TTL"`
	CachePrefix   string        `conf:"default:dashboard,env:CACHE_PREFIX"`

	SendGridKey string `conf:"env:SENDGRID_API_KEY,noprint"`
	MailFrom    string `conf:"default:no-reply@paymentpro.dev,env:MAIL_FROM"`
	MailName    string `conf:"default:PaymentPro,env:MAIL_NAME"`
	PublicURL   string `conf:"default:http://localhost:8080,env:PUBLIC_URL"`

	NewRelicLicense string `conf:"env:NEW_RELIC_LICENSE,noprint"`
	NewRelicApp     string `conf:"default:payment-dashboard,env:NEW_RELIC_APP"`

	CORSOrigins   []string `conf:"default:http://localhost:3000;http://localhost:5173,env:CORS_ORIGINS"`
	SecureCookies bool     `conf:"default:false,env:SECURE_COOKIES"`
}

func ReadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("loading .env file: %v", err)
	}

	var cfg Config
	help, err := conf.ParseOSArgs("APP", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth {
	case authSupabase, authLocal:
	default:
		return fmt.Errorf("unknown auth provider %q", c.Auth)
	}
	switch c.Store {
	case storeSupabase, storePostgres:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if c.usesSupabase() && (c.SupabaseURL == "" || c.SupabaseAnonKey == "") {
		return errors.New("APP_SUPABASE_URL and APP_SUPABASE_ANON_KEY are required")
	}
	if c.Auth == authLocal && c.JWTKey == "" {
		return errors.New("APP_JWT_KEY is required for local auth")
	}

	return nil
}

func (c *Config) usesSupabase() bool {
	return c.Auth == authSupabase || c.Store == storeSupabase
}

func (c *Config) usesPostgres() bool {
	return c.Auth == authLocal || c.Store == storePostgres
}
