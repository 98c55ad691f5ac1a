package app

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envFiles are loaded in order when present. Variables already set in the
// process environment always win.
var envFiles = []string{".env.local", ".env"}

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`
	AppPublicURL      string        `envconfig:"APP_PUBLIC_URL" default:"http://localhost:8080"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	StateTTL      time.Duration `envconfig:"STATE_TTL" default:"12h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	CostAPIBaseURL string        `envconfig:"COST_API_BASE_URL" default:"http://localhost:8000"`
	CostAPIKey     string        `envconfig:"COST_API_KEY"`
	CostAPITimeout time.Duration `envconfig:"COST_API_TIMEOUT" default:"20s"`

	SupersetEmbedURL string `envconfig:"SUPERSET_EMBED_URL"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
}

// LoadConfig reads .env files when present and then the environment.
func LoadConfig() (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err == nil {
			slog.Debug("loaded env file", slog.String("file", file))
		}
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if cfg.CostAPITimeout <= 0 {
		return nil, errors.New("cost api timeout must be positive")
	}
	cfg.AppPublicURL = strings.TrimRight(cfg.AppPublicURL, "/")
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// SimulationLockTTL outlives the API timeout so a slow run keeps its lock.
func (c *Config) SimulationLockTTL() time.Duration {
	return c.CostAPITimeout + 5*time.Second
}
