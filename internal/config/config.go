// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Common holds settings shared by both services.
type Common struct {
	// Application settings
	AppEnv string `env:"APP_ENV" envDefault:"development" validate:"oneof=development test production"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s" validate:"gt=0"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576" validate:"gt=0"`
}

// IsDevelopment returns true if running in development mode.
func (c *Common) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// UsersConfig configures the user management service.
type UsersConfig struct {
	Common

	Port int `env:"USERS_PORT" envDefault:"5009" validate:"min=1,max=65535"`

	// Database (PostgreSQL)
	DatabaseURL      string `env:"DATABASE_URL,required" validate:"required"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"10" validate:"min=1"`
	DatabaseMinConns int32  `env:"DATABASE_MIN_CONNS" envDefault:"2" validate:"min=0,ltefield=DatabaseMaxConns"`
	MigrateOnStart   bool   `env:"MIGRATE_ON_START" envDefault:"true"`
}

// Store backends for the shortener.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// ShortenerConfig configures the URL shortener service.
type ShortenerConfig struct {
	Common

	Port int `env:"SHORTENER_PORT" envDefault:"5000" validate:"min=1,max=65535"`

	// Base URL for short links
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000" validate:"url"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL     string `env:"REDIS_URL" validate:"required_if=StoreBackend redis"`

	ShortCodeLength  int `env:"SHORT_CODE_LENGTH" envDefault:"6" validate:"min=4,max=32"`
	ShortCodeRetries int `env:"SHORT_CODE_RETRIES" envDefault:"0" validate:"min=0,max=10"`
}

type loadOptions struct {
	envFiles []string
}

// LoadOption customizes how configuration is loaded.
type LoadOption func(*loadOptions)

// WithEnvFiles replaces the default ".env" lookup. Pass none to skip dotenv.
func WithEnvFiles(paths ...string) LoadOption {
	return func(o *loadOptions) {
		o.envFiles = paths
	}
}

// LoadUsers loads the users service configuration.
func LoadUsers(opts ...LoadOption) (*UsersConfig, error) {
	cfg := &UsersConfig{}
	if err := load(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadShortener loads the shortener service configuration.
func LoadShortener(opts ...LoadOption) (*ShortenerConfig, error) {
	cfg := &ShortenerConfig{}
	if err := load(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(cfg any, opts []LoadOption) error {
	o := loadOptions{envFiles: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	// godotenv never overrides variables already set in the environment.
	for _, path := range o.envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
