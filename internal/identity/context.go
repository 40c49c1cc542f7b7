package identity

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// FromRequest extracts the session carried on the request's Authorization
// header, if any. Returns nil for anonymous callers, invalid tokens, and
// expired sessions alike.
func (s *Service) FromRequest(c *gin.Context) *SessionData {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	return s.ParseSession(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
}

// CurrentMemberID returns the authenticated member's id when the request
// carries a live session. Expired sessions read as anonymous.
func (s *Service) CurrentMemberID(c *gin.Context) (string, bool) {
	session := s.FromRequest(c)
	if session == nil {
		return "", false
	}
	return session.UserID.String(), true
}
