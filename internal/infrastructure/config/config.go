package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultSecretKey is the development fallback for SECRET_KEY. It is
// refused when ENV=production.
const DefaultSecretKey = "your_secret_key"

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Port           string `env:"PORT,            default=8080"`
	Env            string `env:"ENV,             default=development"`
	LogLevel       string `env:"LOG_LEVEL,       default=info"`
	DatabaseURL    string `env:"DATABASE_URL,    default=sqlite://events.db"`
	SecretKey      string `env:"SECRET_KEY,      default=your_secret_key"`
	SwaggerEnabled bool   `env:"SWAGGER_ENABLED, default=true"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Backend      string        `env:"SESSION_BACKEND,       default=memory"`
	CookieName   string        `env:"SESSION_COOKIE,        default=session"`
	TTL          time.Duration `env:"SESSION_TTL,           default=168h"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	Database string `env:"MONGO_DB, default=eventmanager"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through an arbitrary lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether ENV names the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("config: SECRET_KEY must not be empty")
	}
	if c.IsProduction() && c.SecretKey == DefaultSecretKey {
		return errors.New("config: SECRET_KEY must be changed in production")
	}
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	return nil
}
