// Package identity provides the session/identity boundary consumed by the
// leads context. The engine only reads identity; it never signs users in or
// out. An expired session is indistinguishable from no session.
package identity

import (
	"strings"
	"time"

	"member_portal_backend/platform/apperr"
	"member_portal_backend/platform/config"
	"member_portal_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionData describes the authenticated caller. Owned by this package;
// consumers read it and never mutate it.
type SessionData struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service issues and validates portal sessions.
type Service struct {
	cfg config.IdentityConfig
	log *logger.Logger
}

// New creates the identity service.
func New(cfg config.IdentityConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// SignIn validates operator credentials and returns a signed access token.
// Credentials are checked against the configured admin account.
func (s *Service) SignIn(email, plainPassword string) (string, error) {
	adminEmail := s.cfg.GetAdminEmail()
	adminHash := s.cfg.GetAdminPasswordHash()
	if adminEmail == "" || adminHash == "" {
		return "", apperr.Unauthorized("sign-in disabled")
	}

	if !strings.EqualFold(email, adminEmail) {
		s.log.AuthEvent("signin", email, false, "unknown account")
		return "", apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(plainPassword)); err != nil {
		s.log.AuthEvent("signin", email, false, "password mismatch")
		return "", apperr.Unauthorized("invalid credentials")
	}

	token, err := s.issueToken(uuid.New(), adminEmail, "admin")
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "token signing failed", err)
	}

	s.log.AuthEvent("signin", email, true, "")
	return token, nil
}

func (s *Service) issueToken(userID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"role":  role,
		"type":  "access",
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

// ParseSession validates a raw access token and returns the session it
// carries, or nil when the token is missing, malformed, or expired.
func (s *Service) ParseSession(rawToken string) *SessionData {
	if rawToken == "" {
		return nil
	}

	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.GetJWTAccessSecret()), nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil
	}

	expiresAt := time.Time{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}
	if !expiresAt.After(time.Now()) {
		// Expired session is treated identically to no session.
		return nil
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &SessionData{
		UserID:    userID,
		Email:     email,
		Role:      role,
		Status:    "active",
		ExpiresAt: expiresAt,
	}
}

// IsAuthenticated reports whether the raw token carries a live session.
func (s *Service) IsAuthenticated(rawToken string) bool {
	return s.ParseSession(rawToken) != nil
}
