package http

import (
	"context"
	"net/http"

	"member_portal_backend/platform/config"
	"member_portal_backend/platform/httpkit"
	"member_portal_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthStats reports counters surfaced on the health endpoint.
type HealthStats interface {
	PersistFailures() int64
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and JWT settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (Redis ping).
	Health HealthChecker
	// Stats surfaces persistence failure counters.
	Stats HealthStats
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}

// BuildRouter assembles the gin engine, shared middleware, and module routes.
func (a *App) BuildRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(a.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(a.Config))

	engine.GET("/api/health", a.health)

	v1 := engine.Group("/api/v1")
	authMiddleware := httpkit.AuthRequired(a.Config)
	protected := v1.Group("")
	protected.Use(authMiddleware)

	ctx := &RouterContext{
		Engine:          engine,
		V1:              v1,
		Protected:       protected,
		Config:          a.Config,
		AuthMiddleware:  authMiddleware,
		AuthRateLimiter: httpkit.NewAuthRateLimiter(a.Logger),
	}

	for _, module := range a.Modules {
		module.RegisterRoutes(ctx)
		a.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func (a *App) health(c *gin.Context) {
	status := "ok"
	if a.Health != nil {
		if err := a.Health.Ping(c.Request.Context()); err != nil {
			status = "degraded"
		}
	}

	payload := gin.H{"status": status}
	if a.Stats != nil {
		payload["persistFailures"] = a.Stats.PersistFailures()
	}

	c.JSON(http.StatusOK, payload)
}

func corsMiddleware(cfg config.HTTPConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if cfg.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.GetCORSOrigins()
		corsConfig.AllowCredentials = cfg.GetCORSAllowCreds()
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Session-ID")
	return cors.New(corsConfig)
}
