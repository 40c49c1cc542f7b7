// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// IdentityConfig provides settings needed by the identity service.
type IdentityConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetAdminEmail() string
	GetAdminPasswordHash() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// KVConfig provides settings for the Redis key-value persistence store.
type KVConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// AnalyticsConfig provides settings for the analytics delivery queue.
type AnalyticsConfig interface {
	KVConfig
	GetAnalyticsQueueName() string
	GetAnalyticsConcurrency() int
	GetAnalyticsWebhookURL() string
}

// ScoringConfig provides settings for the engagement scoring rules.
type ScoringConfig interface {
	GetScoringRulesPath() string
}

// SessionConfig provides settings for the engagement session cookie.
type SessionConfig interface {
	GetSessionCookieName() string
	GetSessionCookieSecure() bool
	GetSessionCookieMaxAge() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	RedisURL             string
	RedisTLSInsecure     bool
	JWTAccessSecret      string
	AccessTokenTTL       time.Duration
	AdminEmail           string
	AdminPasswordHash    string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	AnalyticsQueueName   string
	AnalyticsConcurrency int
	AnalyticsWebhookURL  string
	ScoringRulesPath     string
	SessionCookieName    string
	SessionCookieSecure  bool
	SessionCookieMaxAge  time.Duration
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// IdentityConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetAdminEmail() string            { return c.AdminEmail }
func (c *Config) GetAdminPasswordHash() string     { return c.AdminPasswordHash }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// KVConfig implementation
func (c *Config) GetRedisURL() string      { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

// AnalyticsConfig implementation
func (c *Config) GetAnalyticsQueueName() string  { return c.AnalyticsQueueName }
func (c *Config) GetAnalyticsConcurrency() int   { return c.AnalyticsConcurrency }
func (c *Config) GetAnalyticsWebhookURL() string { return c.AnalyticsWebhookURL }

// ScoringConfig implementation
func (c *Config) GetScoringRulesPath() string { return c.ScoringRulesPath }

// SessionConfig implementation
func (c *Config) GetSessionCookieName() string        { return c.SessionCookieName }
func (c *Config) GetSessionCookieSecure() bool        { return c.SessionCookieSecure }
func (c *Config) GetSessionCookieMaxAge() time.Duration { return c.SessionCookieMaxAge }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	sessionCookieSecure := strings.EqualFold(getEnv("SESSION_COOKIE_SECURE", ""), "true")
	if getEnv("SESSION_COOKIE_SECURE", "") == "" {
		sessionCookieSecure = strings.EqualFold(getEnv("APP_ENV", "development"), "production")
	}

	accessTokenTTL, err := durationEnv("JWT_ACCESS_TTL", "15m")
	if err != nil {
		return nil, err
	}
	analyticsConcurrency, err := intEnv("ANALYTICS_CONCURRENCY", "10")
	if err != nil {
		return nil, err
	}
	sessionCookieMaxAge, err := durationEnv("SESSION_COOKIE_MAX_AGE", "8760h")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:       accessTokenTTL,
		AdminEmail:           getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash:    getEnv("ADMIN_PASSWORD_HASH", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AnalyticsQueueName:   getEnv("ANALYTICS_QUEUE_NAME", "analytics"),
		AnalyticsConcurrency: analyticsConcurrency,
		AnalyticsWebhookURL:  getEnv("ANALYTICS_WEBHOOK_URL", ""),
		ScoringRulesPath:     getEnv("SCORING_RULES_PATH", ""),
		SessionCookieName:    getEnv("SESSION_COOKIE_NAME", "mp_session"),
		SessionCookieSecure:  sessionCookieSecure,
		SessionCookieMaxAge:  sessionCookieMaxAge,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func durationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func intEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	result, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return result, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
