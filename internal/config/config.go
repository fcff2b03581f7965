// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Authentication modes. In token mode admin routes require a signed
// bearer token; in credentials mode login only checks the configured
// username/password pair and admin routes are left open (a known
// weakness of the original deployment, kept as an explicit opt-in).
const (
	AuthModeToken       = "token"
	AuthModeCredentials = "credentials"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinTokenSecretLength is the minimum required length for the token
// signing secret.
const MinTokenSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"ACADEMY_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"ACADEMY_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"ACADEMY_ENV" envDefault:"development"`
	LogLevel   string `env:"ACADEMY_LOG_LEVEL" envDefault:"info"`

	// Storage backend: memory, sqlite or mysql.
	StoreDriver string `env:"ACADEMY_STORE_DRIVER" envDefault:"sqlite"`
	DBPath      string `env:"ACADEMY_DB_PATH" envDefault:"./data/academy.db"`
	// MySQL DSN; TLS mode is expressed in the DSN (tls=...) and
	// parseTime=true is required by the driver for DATETIME columns.
	MySQLDSN string `env:"ACADEMY_MYSQL_DSN"`

	// Authentication: token (default) or credentials.
	AuthMode      string        `env:"ACADEMY_AUTH_MODE" envDefault:"token"`
	AdminUsername string        `env:"ACADEMY_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string        `env:"ACADEMY_ADMIN_PASSWORD" envDefault:"admin123"`
	TokenSecret   string        `env:"ACADEMY_TOKEN_SECRET"`
	TokenTTL      time.Duration `env:"ACADEMY_TOKEN_TTL" envDefault:"24h"`

	CORSOrigins []string `env:"ACADEMY_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	UploadsDir  string   `env:"ACADEMY_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL     string `env:"ACADEMY_REDIS_URL"`                       // Optional Redis URL for shared caching
	CachePrefix  string `env:"ACADEMY_CACHE_PREFIX" envDefault:"academy:"` // Redis key prefix
	CacheTTL     int    `env:"ACADEMY_CACHE_TTL" envDefault:"60"`       // Public listing cache TTL in seconds
	CacheMaxSize int    `env:"ACADEMY_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// MessageRetentionDays controls the nightly purge of read contact
	// messages. 0 disables the purge.
	MessageRetentionDays int `env:"ACADEMY_MESSAGE_RETENTION_DAYS" envDefault:"90"`

	// Seeding configuration
	DoSeed bool `env:"ACADEMY_DO_SEED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// TokenAuth returns true if admin routes are gated by bearer tokens.
func (c Config) TokenAuth() bool {
	return c.AuthMode == AuthModeToken
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.AuthMode {
	case AuthModeToken, AuthModeCredentials:
	default:
		return nil, fmt.Errorf("ACADEMY_AUTH_MODE must be %q or %q, got %q",
			AuthModeToken, AuthModeCredentials, cfg.AuthMode)
	}

	// The signing secret is only required when tokens are in use.
	if cfg.TokenAuth() {
		if len(cfg.TokenSecret) < MinTokenSecretLength {
			return nil, fmt.Errorf("ACADEMY_TOKEN_SECRET must be at least %d bytes long, got %d bytes; "+
				"generate a secure secret with: openssl rand -base64 32",
				MinTokenSecretLength, len(cfg.TokenSecret))
		}
		for _, weak := range knownWeakSecrets {
			if cfg.TokenSecret == weak {
				return nil, fmt.Errorf("ACADEMY_TOKEN_SECRET is a known default value and must not be used; " +
					"generate a secure secret with: openssl rand -base64 32")
			}
		}
	}

	if strings.TrimSpace(cfg.AdminUsername) == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ACADEMY_ADMIN_USERNAME and ACADEMY_ADMIN_PASSWORD must not be empty")
	}

	return cfg, nil
}
