// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the Estofamais site configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Storage backends for the key/value store holding the users list.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageMySQL  = "mysql"
	StorageRedis  = "redis"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"ESTOFA_SESSION_SECRET,required"`
	ServerHost    string `env:"ESTOFA_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"ESTOFA_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"ESTOFA_ENV" envDefault:"development"`
	LogLevel      string `env:"ESTOFA_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"ESTOFA_UPLOADS_DIR" envDefault:"./uploads"`

	// Public base URL used in the sitemap; derived from the request when empty
	SiteURL string `env:"ESTOFA_SITE_URL"`

	// Key/value storage
	Storage  string `env:"ESTOFA_STORAGE" envDefault:"memory"`
	DBPath   string `env:"ESTOFA_DB_PATH" envDefault:"./data/estofamais.db"`
	MySQLDSN string `env:"ESTOFA_MYSQL_DSN"`
	RedisURL string `env:"ESTOFA_REDIS_URL"`
	KVPrefix string `env:"ESTOFA_KV_PREFIX" envDefault:"estofamais:"`

	// Simulated backend latency, kept so the UI behaves like the mock backend it replaces
	AuthLatency   time.Duration `env:"ESTOFA_AUTH_LATENCY" envDefault:"800ms"`
	SubmitLatency time.Duration `env:"ESTOFA_SUBMIT_LATENCY" envDefault:"1500ms"`

	// Quote drafts idle for longer than this are discarded by the scheduler
	DraftTTL time.Duration `env:"ESTOFA_DRAFT_TTL" envDefault:"2h"`

	// JSON API
	JWTSecret   string        `env:"ESTOFA_JWT_SECRET"`
	JWTTTL      time.Duration `env:"ESTOFA_JWT_TTL" envDefault:"1h"`
	CORSOrigins []string      `env:"ESTOFA_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Optional integrations
	CloudinaryURL string `env:"ESTOFA_CLOUDINARY_URL"`
	GeoIPDBPath   string `env:"ESTOFA_GEOIP_DB_PATH"`
	AMQPURL       string `env:"ESTOFA_AMQP_URL"`
	AMQPExchange  string `env:"ESTOFA_AMQP_EXCHANGE" envDefault:"estofamais.events"`

	SMTPHost     string   `env:"ESTOFA_SMTP_HOST"`
	SMTPPort     int      `env:"ESTOFA_SMTP_PORT" envDefault:"587"`
	SMTPUsername string   `env:"ESTOFA_SMTP_USERNAME"`
	SMTPPassword string   `env:"ESTOFA_SMTP_PASSWORD"`
	SMTPFrom     string   `env:"ESTOFA_SMTP_FROM" envDefault:"site@estofamais.com"`
	NotifyEmails []string `env:"ESTOFA_NOTIFY_EMAILS" envSeparator:","`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SMTPEnabled returns true if outgoing mail is configured.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && len(c.NotifyEmails) > 0
}

// AMQPEnabled returns true if event publishing is configured.
func (c Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// CloudinaryEnabled returns true if uploads go to Cloudinary instead of the local disk.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// TokenSecret returns the secret used to sign API tokens.
// Falls back to the session secret when no dedicated JWT secret is set.
func (c Config) TokenSecret() []byte {
	if c.JWTSecret != "" {
		return []byte(c.JWTSecret)
	}
	return []byte(c.SessionSecret)
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("ESTOFA_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("ESTOFA_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("ESTOFA_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateStorage checks the storage backend name and its required settings.
func (c *Config) validateStorage() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StorageMemory, StorageSQLite:
		return nil
	case StorageMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("ESTOFA_MYSQL_DSN is required when ESTOFA_STORAGE=mysql")
		}
		return nil
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("ESTOFA_REDIS_URL is required when ESTOFA_STORAGE=redis")
		}
		return nil
	default:
		return fmt.Errorf("unknown ESTOFA_STORAGE %q (want memory, sqlite, mysql or redis)", c.Storage)
	}
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
