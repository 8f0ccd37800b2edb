// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"os"
	"time"
)

// Config holds every runtime setting the server needs.
type Config struct {
	Addr        string
	DatabaseURL string

	SecretKey string
	TokenAlg  string
	TokenTTL  time.Duration

	SQLEcho   bool
	LogFormat string

	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// Load reads configuration from environment variables, applying defaults.
// DATABASE_URL and SECRET_KEY are required.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:             getEnvWithDefault("ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SecretKey:        os.Getenv("SECRET_KEY"),
		TokenAlg:         getEnvWithDefault("TOKEN_ALG", "HS256"),
		SQLEcho:          os.Getenv("SQL_ECHO") == "true",
		LogFormat:        getEnvWithDefault("LOG_FORMAT", "console"),
		OIDCIssuer:       os.Getenv("OIDC_ISSUER"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY is required")
	}

	ttl := getEnvWithDefault("TOKEN_TTL", "30m")
	d, err := time.ParseDuration(ttl)
	if err != nil || d <= 0 {
		return nil, errors.New("TOKEN_TTL must be a positive duration")
	}
	cfg.TokenTTL = d

	return cfg, nil
}

// SSOEnabled reports whether every OIDC setting is present.
func (c *Config) SSOEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != "" &&
		c.OIDCClientSecret != "" && c.OIDCRedirectURL != ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
