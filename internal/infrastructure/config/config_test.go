package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, env map[string]string) *Config {
	t.Helper()
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := load(t, map[string]string{})

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "sqlite://events.db", cfg.DatabaseURL)
	assert.Equal(t, DefaultSecretKey, cfg.SecretKey)
	assert.True(t, cfg.SwaggerEnabled)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, "eventmanager", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	cfg := load(t, map[string]string{
		"PORT":            "9000",
		"DATABASE_URL":    "postgres://localhost/events",
		"SECRET_KEY":      "s3cr3t",
		"SESSION_BACKEND": "redis",
		"SESSION_TTL":     "30m",
		"REDIS_DB":        "2",
		"SWAGGER_ENABLED": "false",
	})

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://localhost/events", cfg.DatabaseURL)
	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.False(t, cfg.SwaggerEnabled)
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_TTL": "forever",
	}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"development default secret", map[string]string{}, false},
		{"production default secret", map[string]string{"ENV": "production"}, true},
		{"production custom secret", map[string]string{"ENV": "production", "SECRET_KEY": "x"}, false},
		{"unknown session backend", map[string]string{"SESSION_BACKEND": "file"}, true},
		{"non-positive ttl", map[string]string{"SESSION_TTL": "0s"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := load(t, tt.env).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
