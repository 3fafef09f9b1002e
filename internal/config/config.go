// Package config loads runtime settings from the environment.
//
// SOURCES, in order:
//  1. A `.env` file in the working directory, if present (godotenv autoload)
//  2. Process environment variables prefixed FYYUR_
//
// Keys are the lowercased variable name without the prefix:
// FYYUR_DB_PATH → db_path → Config.DBPath.
//
// Load validates the result so a bad value stops the process at startup
// rather than at the first request that needs it.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads .env into the process environment before Load reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const prefix = "FYYUR_"

// Defaults for every optional key.
const (
	DefaultEnv             = "development"
	DefaultPort            = 8080
	DefaultDBPath          = "data/fyyur.db"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 30 * time.Second
	DefaultSessionTTL      = 12 * time.Hour
)

type Config struct {
	Env      string `koanf:"env" validate:"oneof=development test production"`
	Port     int    `koanf:"port" validate:"min=1,max=65535"`
	DBPath   string `koanf:"db_path" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// Editor auth is on only when both of these are set.
	JWTSecret          string        `koanf:"jwt_secret" validate:"required_with=EditorPasswordHash,omitempty,min=16"`
	EditorPasswordHash string        `koanf:"editor_password_hash" validate:"required_with=JWTSecret"`
	SessionTTL         time.Duration `koanf:"session_ttl" validate:"min=0"`
	SecureCookies      bool          `koanf:"secure_cookies"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

// Load reads FYYUR_* variables, fills defaults and validates.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = DefaultEnv
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.SessionTTL == 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// AuthEnabled reports whether write routes require an editor session.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.EditorPasswordHash != ""
}

// SlogLevel maps LogLevel onto slog. Load has already rejected unknown values.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
