// Package handler exposes the leads HTTP surface: lead management for the
// authenticated operator and the public engagement tracking endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"member_portal_backend/internal/leads/attribution"
	"member_portal_backend/internal/leads/domain"
	"member_portal_backend/internal/leads/lifecycle"
	"member_portal_backend/internal/leads/transport"
	"member_portal_backend/platform/config"
	"member_portal_backend/platform/httpkit"
	"member_portal_backend/platform/validator"
)

// IdentityReader supplies the authenticated caller's identity, when one is
// present. An expired session reads as anonymous.
type IdentityReader interface {
	CurrentMemberID(c *gin.Context) (string, bool)
}

// Handler serves the leads routes.
type Handler struct {
	engine   *lifecycle.Engine
	val      *validator.Validator
	cfg      config.SessionConfig
	identity IdentityReader
}

func New(engine *lifecycle.Engine, val *validator.Validator, cfg config.SessionConfig, identity IdentityReader) *Handler {
	return &Handler{engine: engine, val: val, cfg: cfg, identity: identity}
}

// RegisterLeadRoutes mounts the operator-facing lead management routes.
func (h *Handler) RegisterLeadRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.CreateLead)
	rg.GET("/leads", h.ListLeads)
	rg.GET("/leads/:id", h.GetLead)
	rg.POST("/leads/:id/score", h.UpdateLeadScore)
}

// RegisterEngagementRoutes mounts the public engagement tracking routes.
func (h *Handler) RegisterEngagementRoutes(rg *gin.RouterGroup) {
	rg.POST("/engagement", h.TrackEngagement)
	rg.GET("/engagement/profile", h.GetProfile)
	rg.GET("/engagement/profile/preview", h.PreviewStatus)
}

// CreateLead handles POST /leads.
func (h *Handler) CreateLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	lead, err := h.engine.CreateLead(c.Request.Context(), lifecycle.CreateLeadInput{
		Email:  req.Email,
		Name:   req.Name,
		Phone:  req.Phone,
		Source: req.Source,
	}, h.requestAttribution(c))
	if err != nil {
		httpkit.DomainError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.NewLeadResponse(lead))
}

// ListLeads handles GET /leads. Pagination via limit/offset query params;
// out-of-range values fall back to the engine's defaults.
func (h *Handler) ListLeads(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	leads, err := h.engine.ListLeads(c.Request.Context(), limit, offset)
	if err != nil {
		httpkit.DomainError(c, err)
		return
	}

	httpkit.OK(c, transport.NewLeadListResponse(leads))
}

// GetLead handles GET /leads/:id.
func (h *Handler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	lead, err := h.engine.GetLead(c.Request.Context(), id)
	if err != nil {
		httpkit.DomainError(c, err)
		return
	}

	httpkit.OK(c, transport.NewLeadResponse(lead))
}

// UpdateLeadScore handles POST /leads/:id/score. The id here is the profile
// id; a missing profile is a 404.
func (h *Handler) UpdateLeadScore(c *gin.Context) {
	var req transport.UpdateLeadScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	profile, err := h.engine.UpdateLeadScore(c.Request.Context(), c.Param("id"), req.Points)
	if err != nil {
		httpkit.DomainError(c, err)
		return
	}

	httpkit.OK(c, profile)
}

// TrackEngagement handles POST /engagement. Always 202: unknown actions are
// accepted and dropped, matching the engine's total contract.
func (h *Handler) TrackEngagement(c *gin.Context) {
	var req transport.TrackEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	sessionID := h.resolveSessionID(c)
	h.engine.TrackEngagement(c.Request.Context(), sessionID, req.Action, req.Metadata, req.PageURL)

	httpkit.JSON(c, http.StatusAccepted, transport.TrackEngagementResponse{SessionID: sessionID, Tracked: true})
}

// GetProfile handles GET /engagement/profile.
func (h *Handler) GetProfile(c *gin.Context) {
	sessionID := h.resolveSessionID(c)
	profile := h.engine.GetLeadProfile(c.Request.Context(), sessionID, h.requestAttribution(c))
	httpkit.OK(c, profile)
}

// PreviewStatus handles GET /engagement/profile/preview without mutating the
// profile.
func (h *Handler) PreviewStatus(c *gin.Context) {
	sessionID := h.resolveSessionID(c)
	profile := h.engine.GetLeadProfile(c.Request.Context(), sessionID, nil)

	httpkit.OK(c, transport.StatusPreviewResponse{
		SessionID:  sessionID,
		Status:     string(h.engine.CalculateLeadStatus(profile)),
		TotalScore: profile.TotalScore(),
	})
}

// requestAttribution combines request attribution with the authenticated
// member, when a live session is present. Attribution is only captured at
// profile creation, so anonymous and expired-session callers simply leave
// MemberID unset.
func (h *Handler) requestAttribution(c *gin.Context) *domain.AttributionData {
	data := attribution.FromRequest(c)
	if h.identity == nil {
		return data
	}

	memberID, ok := h.identity.CurrentMemberID(c)
	if !ok {
		return data
	}

	if data == nil {
		data = &domain.AttributionData{}
	}
	if data.MemberID == "" {
		data.MemberID = memberID
	}
	return data
}

// resolveSessionID threads the engagement session id explicitly: the
// X-Session-ID header wins, then the session cookie; a fresh id is generated
// and set as a cookie when neither is present.
func (h *Handler) resolveSessionID(c *gin.Context) string {
	if header := c.GetHeader("X-Session-ID"); header != "" {
		return header
	}

	if cookie, err := c.Cookie(h.cfg.GetSessionCookieName()); err == nil && cookie != "" {
		return cookie
	}

	sessionID := uuid.NewString()
	c.SetCookie(
		h.cfg.GetSessionCookieName(),
		sessionID,
		int(h.cfg.GetSessionCookieMaxAge().Seconds()),
		"/",
		"",
		h.cfg.GetSessionCookieSecure(),
		true,
	)
	return sessionID
}
