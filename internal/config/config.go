package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Cache   CacheConfig
	Server  ServerConfig
}

type AppConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Port         int    `env:"PORT" envDefault:"8080"`
	CSRFEnabled  bool   `env:"CSRF_ENABLED" envDefault:"true"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

// BackendConfig points at the API that owns accounts and sessions.
type BackendConfig struct {
	BaseURL      string        `env:"BACKEND_BASE_URL" envDefault:"http://localhost:3000"`
	Timeout      time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	RetryMax     int           `env:"BACKEND_RETRY_MAX" envDefault:"0"`
	RetryBackoff time.Duration `env:"BACKEND_RETRY_BACKOFF" envDefault:"200ms"`
}

type CacheConfig struct {
	RedisURL     string        `env:"REDIS_URL"`
	AuthCacheTTL time.Duration `env:"AUTH_CACHE_TTL" envDefault:"0s"`
}

type ServerConfig struct {
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads .env (if present) and the process environment. Empty variables
// take their default; malformed ones are an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, "PORT must be between 1 and 65535")
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, "BACKEND_BASE_URL must be an absolute http(s) URL")
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, "BACKEND_TIMEOUT must be positive")
	}
	if c.Backend.RetryMax < 0 {
		errs = append(errs, "BACKEND_RETRY_MAX cannot be negative")
	}
	if c.Backend.RetryBackoff <= 0 {
		errs = append(errs, "BACKEND_RETRY_BACKOFF must be positive")
	}
	if c.Cache.AuthCacheTTL < 0 {
		errs = append(errs, "AUTH_CACHE_TTL cannot be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, ", "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}

// AuthCacheEnabled reports whether check-auth results should be cached in Redis.
func (c *Config) AuthCacheEnabled() bool {
	return c.Cache.RedisURL != "" && c.Cache.AuthCacheTTL > 0
}
