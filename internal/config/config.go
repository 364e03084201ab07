// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"EDUNEWS_DB_PATH" envDefault:"./data/edunews.db"`
	SessionSecret string `env:"EDUNEWS_SESSION_SECRET,required"`
	ServerHost    string `env:"EDUNEWS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"EDUNEWS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"EDUNEWS_ENV" envDefault:"development"`
	LogLevel      string `env:"EDUNEWS_LOG_LEVEL" envDefault:"info"`
	SiteName      string `env:"EDUNEWS_SITE_NAME" envDefault:"동아교육신문"`
	SiteURL       string `env:"EDUNEWS_SITE_URL" envDefault:"http://localhost:8080"`
	DefaultLang   string `env:"EDUNEWS_DEFAULT_LANG" envDefault:"ko"`

	// Seeding configuration
	DoSeed bool `env:"EDUNEWS_DO_SEED" envDefault:"false"` // Enable database seeding

	// Scheduled publishing
	EnableScheduler bool `env:"EDUNEWS_ENABLE_SCHEDULER" envDefault:"true"`

	// Rate limiting for subscribe and login endpoints
	RateLimitPerSecond float64 `env:"EDUNEWS_RATE_LIMIT_PER_SECOND" envDefault:"0.5"`
	RateLimitBurst     int     `env:"EDUNEWS_RATE_LIMIT_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("EDUNEWS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("EDUNEWS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("EDUNEWS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
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
