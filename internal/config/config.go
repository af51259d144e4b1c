// Package config centralises environment-driven configuration.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains runtime configuration for the kittyfit server.
type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`

	// DatabaseURL selects the hosted store. When empty the server falls back
	// to the in-memory adapter, which only makes sense for local development.
	DatabaseURL string `env:"DATABASE_URL"`

	// DeviceID identifies this installation for the remembered-sign-in lookup
	// and keys the device-level onboarding flag.
	DeviceID string `env:"DEVICE_ID" envDefault:"default-device"`

	// RedirectDelay is the presentation pause applied by callers of the
	// navigation guard before a redirect fires. Purely cosmetic.
	RedirectDelay time.Duration `env:"REDIRECT_DELAY" envDefault:"0s"`

	SessionCookieMaxAge int `env:"SESSION_COOKIE_MAX_AGE" envDefault:"86400"`

	OIDC OIDC `envPrefix:"OIDC_"`
}

// OIDC contains single sign-on parameters.
type OIDC struct {
	Enabled      bool   `env:"ENABLED" envDefault:"false"`
	Issuer       string `env:"ISSUER"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
