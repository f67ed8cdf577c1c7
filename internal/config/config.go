package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Identity provider names accepted by IDENTITY_PROVIDER.
const (
	ProviderGoTrue  = "gotrue"
	ProviderSurreal = "surreal"
	ProviderLocal   = "local"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type AppCfg struct {
	Addr          string  `env:"APP_ADDR" envDefault:":8080"`
	BaseURL       string  `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	SessionSecret string  `env:"SESSION_SECRET" envDefault:"development-secret-change-me"`
	RateLimit     float64 `env:"RATE_LIMIT" envDefault:"10"`
}

type LogCfg struct {
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
}

type GoTrueCfg struct {
	URL     string        `env:"GOTRUE_URL"`
	AnonKey string        `env:"GOTRUE_ANON_KEY"`
	Timeout time.Duration `env:"GOTRUE_TIMEOUT" envDefault:"10s"`
}

type SurrealCfg struct {
	URL    string `env:"SURREAL_URL"`
	NS     string `env:"SURREAL_NS"`
	DB     string `env:"SURREAL_DB"`
	User   string `env:"SURREAL_USER"`
	Pass   string `env:"SURREAL_PASS"`
	Access string `env:"SURREAL_ACCESS" envDefault:"account"`
}

type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type CacheCfg struct {
	Backend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

type LocalCfg struct {
	JWTSecret string        `env:"LOCAL_JWT_SECRET"`
	TokenTTL  time.Duration `env:"LOCAL_TOKEN_TTL" envDefault:"1h"`
}

type EmailCfg struct {
	Provider string `env:"EMAIL_PROVIDER" envDefault:"log"`
	APIKey   string `env:"EMAIL_API_KEY"`
	Sender   string `env:"EMAIL_SENDER"`
}

// Config holds all configuration for the application.
type Config struct {
	App              AppCfg
	Log              LogCfg
	IdentityProvider string `env:"IDENTITY_PROVIDER" envDefault:"local"`
	GoTrue           GoTrueCfg
	Surreal          SurrealCfg
	Redis            RedisCfg
	Cache            CacheCfg
	Local            LocalCfg
	Email            EmailCfg
}

// New loads a .env file if one exists, then reads the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the selected backends depend on.
func (c *Config) Validate() error {
	var errs []error

	switch c.IdentityProvider {
	case ProviderGoTrue:
		if c.GoTrue.URL == "" || c.GoTrue.AnonKey == "" {
			errs = append(errs, errors.New("IDENTITY_PROVIDER is 'gotrue' but GOTRUE_URL or GOTRUE_ANON_KEY is not set"))
		}
	case ProviderSurreal:
		if c.Surreal.URL == "" || c.Surreal.NS == "" || c.Surreal.DB == "" {
			errs = append(errs, errors.New("IDENTITY_PROVIDER is 'surreal' but SURREAL_URL, SURREAL_NS or SURREAL_DB is not set"))
		}
	case ProviderLocal:
		if c.Local.JWTSecret == "" {
			errs = append(errs, errors.New("IDENTITY_PROVIDER is 'local' but LOCAL_JWT_SECRET is not set"))
		}
		if c.Local.TokenTTL <= 0 {
			errs = append(errs, errors.New("LOCAL_TOKEN_TTL must be a positive duration"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown identity provider: %q", c.IdentityProvider))
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend: %q", c.Cache.Backend))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be a positive duration"))
	}
	if c.App.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT must be positive"))
	}

	return errors.Join(errs...)
}

// NeedsRedis reports whether any selected backend talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.Cache.Backend == CacheRedis || c.IdentityProvider == ProviderLocal
}
