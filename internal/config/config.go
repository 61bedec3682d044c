// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service settings.
type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	LogLevel string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr is the host:port of the Redis server.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Type    string `mapstructure:"type"` // memory or redis
	// PermissionTTL bounds how long a resolved permission set is reused.
	PermissionTTL time.Duration `mapstructure:"permission_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var defaults = map[string]any{
	"env":                     "development",
	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.read_timeout":     "15s",
	"server.write_timeout":    "30s",
	"server.shutdown_timeout": "30s",
	"database.host":           "localhost",
	"database.port":           5432,
	"database.user":           "hms",
	"database.password":       "",
	"database.dbname":         "hms",
	"database.sslmode":        "disable",
	"database.log_level":      "warn",
	"redis.host":              "localhost",
	"redis.port":              6379,
	"redis.password":          "",
	"redis.db":                0,
	"cache.enabled":           true,
	"cache.type":              "memory",
	"cache.permission_ttl":    "5m",
	"log.level":               "info",
	"log.format":              "json",
	"auth.jwt_secret":         "",
	"auth.issuer":             "remedium-hms",
	"auth.token_ttl":          "12h",
	"cors.allowed_origins":    []string{"*"},
	"cors.allowed_methods":    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	"cors.allowed_headers":    []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	"metrics.enabled":         true,
}

// Load reads an optional .env file, then HMS_* environment variables over
// the defaults. HMS_DATABASE_HOST sets database.host and so on.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the service runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database host is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database name is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	switch c.Cache.Type {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("unknown cache type %q", c.Cache.Type))
	}
	if c.Auth.JWTSecret == "" && !c.IsDev() {
		errs = append(errs, errors.New("auth jwt secret is required outside development"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth token ttl must be positive"))
	}
	return errors.Join(errs...)
}
