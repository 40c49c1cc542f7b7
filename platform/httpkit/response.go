package httpkit

import (
	"net/http"

	"member_portal_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload shape.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// JSON writes a payload with an explicit status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a payload with status 200.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Error writes an error payload with an explicit status code.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// DomainError maps an apperr.Error to its HTTP status, falling back to 500
// for untyped errors.
func DomainError(c *gin.Context, err error) {
	if typed, ok := err.(*apperr.Error); ok {
		c.JSON(typed.HTTPStatus(), ErrorResponse{Error: typed.Message, Details: typed.Details})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
