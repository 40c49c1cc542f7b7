// Package leads is the lead scoring and lifecycle bounded context.
package leads

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"member_portal_backend/internal/events"
	apphttp "member_portal_backend/internal/http"
	"member_portal_backend/internal/leads/handler"
	"member_portal_backend/internal/leads/lifecycle"
	"member_portal_backend/internal/leads/profiles"
	"member_portal_backend/internal/leads/repository"
	"member_portal_backend/internal/leads/scoring"
	"member_portal_backend/platform/config"
	"member_portal_backend/platform/httpkit"
	"member_portal_backend/platform/kv"
	"member_portal_backend/platform/logger"
	"member_portal_backend/platform/validator"
)

// ModuleConfig combines the config surfaces the leads module consumes.
type ModuleConfig interface {
	config.ScoringConfig
	config.SessionConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	engine      *lifecycle.Engine
	store       *profiles.Store
	handler     *handler.Handler
	rateLimiter *httpkit.IPRateLimiter
}

// NewModule wires the leads context: rule table, profile store, lead
// repository, and the lifecycle engine. The identity reader may be nil, in
// which case every caller is treated as anonymous.
func NewModule(ctx context.Context, cfg ModuleConfig, pool *pgxpool.Pool, store kv.Store, bus events.Bus, val *validator.Validator, log *logger.Logger, ident handler.IdentityReader, opts ...lifecycle.Option) (*Module, error) {
	rules, err := scoring.Load(cfg.GetScoringRulesPath())
	if err != nil {
		return nil, err
	}

	profileStore := profiles.New(ctx, store, log)
	repo := repository.New(pool)
	engine := lifecycle.NewEngine(repo, profileStore, rules, bus, log, opts...)

	return &Module{
		engine:      engine,
		store:       profileStore,
		handler:     handler.New(engine, val, cfg, ident),
		rateLimiter: httpkit.NewIPRateLimiter(20, 40, log),
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Engine returns the lifecycle engine for use by other modules.
func (m *Module) Engine() *lifecycle.Engine {
	return m.engine
}

// ProfileStore exposes the profile store, mainly for health reporting.
func (m *Module) ProfileStore() *profiles.Store {
	return m.store
}

// RegisterRoutes mounts lead management behind auth and the engagement
// tracking routes publicly, rate limited per IP.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterLeadRoutes(ctx.Protected)

	engagement := ctx.V1.Group("")
	engagement.Use(m.rateLimiter.RateLimit())
	m.handler.RegisterEngagementRoutes(engagement)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
