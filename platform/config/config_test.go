package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/portal")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")
}

func TestLoadWithDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AccessTokenTTL.Minutes() != 15 {
		t.Fatalf("default access TTL = %v, want 15m", cfg.AccessTokenTTL)
	}
	if cfg.AnalyticsConcurrency != 10 {
		t.Fatalf("default analytics concurrency = %d, want 10", cfg.AnalyticsConcurrency)
	}
	if cfg.SessionCookieName != "mp_session" {
		t.Fatalf("default session cookie name = %q", cfg.SessionCookieName)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_TTL", "15minutes")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_ACCESS_TTL") {
		t.Fatalf("expected JWT_ACCESS_TTL error, got %v", err)
	}
}

func TestLoadRejectsMalformedInt(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ANALYTICS_CONCURRENCY", "lots")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ANALYTICS_CONCURRENCY") {
		t.Fatalf("expected ANALYTICS_CONCURRENCY error, got %v", err)
	}
}

func TestLoadRequiresCoreSettings(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_SECRET", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_ACCESS_SECRET") {
		t.Fatalf("expected JWT_ACCESS_SECRET error, got %v", err)
	}
}
