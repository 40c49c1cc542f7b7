// Package transport defines the request/response DTOs for the leads HTTP
// surface.
package transport

import (
	"time"

	"member_portal_backend/internal/leads/domain"
)

// CreateLeadRequest is the payload for creating a lead. Email presence and
// shape are validated at the edge; the engine itself does not re-validate.
type CreateLeadRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name" validate:"omitempty,max=200"`
	Phone  string `json:"phone" validate:"omitempty,max=32"`
	Source string `json:"source" validate:"omitempty,max=100"`
}

// TrackEngagementRequest is the payload for tracking one engagement action.
type TrackEngagementRequest struct {
	Action   string                 `json:"action" validate:"required,max=100"`
	Metadata map[string]interface{} `json:"metadata"`
	PageURL  string                 `json:"pageUrl" validate:"omitempty,max=2048"`
}

// UpdateLeadScoreRequest adds points to a lead's engagement score.
type UpdateLeadScoreRequest struct {
	Points int `json:"points" validate:"required"`
}

// LeadResponse is the external-facing lead creation record.
type LeadResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewLeadResponse maps a domain lead to its response shape.
func NewLeadResponse(lead domain.Lead) LeadResponse {
	return LeadResponse{
		ID:        lead.ID.String(),
		Email:     lead.Email,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Source:    lead.Source,
		Status:    string(lead.Status),
		Score:     lead.Score,
		CreatedAt: lead.CreatedAt,
	}
}

// LeadListResponse is a page of lead creation records.
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
	Count int            `json:"count"`
}

// NewLeadListResponse maps a page of domain leads to its response shape.
func NewLeadListResponse(leads []domain.Lead) LeadListResponse {
	items := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, NewLeadResponse(lead))
	}
	return LeadListResponse{Leads: items, Count: len(items)}
}

// TrackEngagementResponse acknowledges a tracked action with the session it
// was attributed to.
type TrackEngagementResponse struct {
	SessionID string `json:"sessionId"`
	Tracked   bool   `json:"tracked"`
}

// StatusPreviewResponse is the non-mutating stage preview.
type StatusPreviewResponse struct {
	SessionID  string `json:"sessionId"`
	Status     string `json:"status"`
	TotalScore int    `json:"totalScore"`
}
