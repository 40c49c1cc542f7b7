package identity

import (
	"net/http"

	"member_portal_backend/platform/httpkit"
	"member_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// SignInRequest is the credential payload for operator sign-in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInResponse carries the issued access token.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

// Handler exposes the identity HTTP surface.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates the identity handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts identity routes on the provided group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signin", h.SignIn)
}

// SignIn handles POST /auth/signin.
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	token, err := h.svc.SignIn(req.Email, req.Password)
	if err != nil {
		httpkit.DomainError(c, err)
		return
	}

	httpkit.OK(c, SignInResponse{AccessToken: token})
}
