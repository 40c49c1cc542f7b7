package identity

import (
	apphttp "member_portal_backend/internal/http"
	"member_portal_backend/platform/config"
	"member_portal_backend/platform/logger"
	"member_portal_backend/platform/validator"
)

// Module is the identity bounded context module implementing http.Module.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule creates and initializes the identity module.
func NewModule(cfg config.IdentityConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := New(cfg, log)
	return &Module{
		service: svc,
		handler: NewHandler(svc, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "identity"
}

// Service returns the identity service for use by other modules.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts identity routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
