package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	Steam   SteamConfig
	Session SessionConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.App.validateBaseURL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TROPHYROOM_APP_ENV" required:"true"`
	Port         string `envconfig:"TROPHYROOM_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"TROPHYROOM_APP_BASE_URL" required:"true"`
	LogLevel     string `envconfig:"TROPHYROOM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TROPHYROOM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Origin returns the scheme://host portion of the configured base URL,
// which doubles as the OpenID realm.
func (a AppConfig) Origin() (string, error) {
	parsed, err := url.Parse(a.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}

func (a AppConfig) validateBaseURL() error {
	parsed, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base url must be http or https, got %q", a.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base url %q has no host", a.BaseURL)
	}
	return nil
}

type SteamConfig struct {
	// APIKey is deliberately not required: endpoints that depend on it must
	// degrade to a configuration error instead of preventing startup.
	APIKey           string        `envconfig:"STEAM_API_KEY"`
	APIBaseURL       string        `envconfig:"STEAM_API_BASE_URL" default:"https://api.steampowered.com"`
	StoreBaseURL     string        `envconfig:"STEAM_STORE_BASE_URL" default:"https://store.steampowered.com"`
	CommunityBaseURL string        `envconfig:"STEAM_COMMUNITY_BASE_URL" default:"https://steamcommunity.com"`
	Timeout          time.Duration `envconfig:"STEAM_API_TIMEOUT" default:"10s"`
}

type SessionConfig struct {
	Secret     string `envconfig:"TROPHYROOM_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"TROPHYROOM_SESSION_ISSUER" default:"trophyroom"`
	CookieName string `envconfig:"TROPHYROOM_SESSION_COOKIE" default:"trophyroom_session"`
	TTLDays    int    `envconfig:"TROPHYROOM_SESSION_TTL_DAYS" default:"30"`
}

// TTL returns the session lifetime configured in days.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLDays <= 0 {
		return 0
	}
	return time.Duration(s.TTLDays) * 24 * time.Hour
}

type RedisConfig struct {
	// URL is optional: without it the session denylist is disabled and
	// logout relies on cookie deletion alone.
	URL          string        `envconfig:"TROPHYROOM_REDIS_URL"`
	PoolSize     int           `envconfig:"TROPHYROOM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TROPHYROOM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TROPHYROOM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TROPHYROOM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TROPHYROOM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}
