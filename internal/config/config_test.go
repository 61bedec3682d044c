package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 5*time.Minute, cfg.Cache.PermissionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.IsDev())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HMS_ENV", "production")
	t.Setenv("HMS_SERVER_PORT", "9090")
	t.Setenv("HMS_DATABASE_HOST", "db.internal")
	t.Setenv("HMS_CACHE_TYPE", "redis")
	t.Setenv("HMS_REDIS_PORT", "6380")
	t.Setenv("HMS_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("HMS_AUTH_TOKEN_TTL", "1h")
	t.Setenv("HMS_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.IsDev())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "database host is required"},
		{"bad cache type", func(c *Config) { c.Cache.Type = "memcached" }, `unknown cache type "memcached"`},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid server port 0"},
		{"secret outside dev", func(c *Config) { c.Env = "production" }, "auth jwt secret is required"},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "auth token ttl must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
