package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fittrack_test")
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q; want :8080", cfg.Addr)
	}
	if cfg.TokenAlg != "HS256" {
		t.Errorf("TokenAlg = %q; want HS256", cfg.TokenAlg)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v; want 30m", cfg.TokenTTL)
	}
	if cfg.SQLEcho {
		t.Error("SQLEcho = true; want false by default")
	}
	if cfg.SSOEnabled() {
		t.Error("SSOEnabled = true without any OIDC settings")
	}
}

func TestLoadRequiredVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SECRET_KEY", "s3cret")
	if _, err := Load(); err == nil {
		t.Error("Load without DATABASE_URL: want error")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/fittrack_test")
	t.Setenv("SECRET_KEY", "")
	if _, err := Load(); err == nil {
		t.Error("Load without SECRET_KEY: want error")
	}
}

func TestLoadTokenTTL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fittrack_test")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v; want 2h", cfg.TokenTTL)
	}

	t.Setenv("TOKEN_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Error("Load with invalid TOKEN_TTL: want error")
	}
}
