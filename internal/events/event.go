// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"member_portal_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent = events.NewBaseEvent
	BaseEventAt  = events.BaseEventAt
)

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead record is created.
type LeadCreated struct {
	BaseEvent
	LeadID string `json:"leadId"`
	Email  string `json:"email"`
	Source string `json:"source"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published when a profile crosses a stage threshold.
// It is emitted only on an actual transition, never on a same-stage update.
type LeadStatusChanged struct {
	BaseEvent
	ProfileID      string `json:"profileId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
	TotalScore     int    `json:"totalScore"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }

// EngagementTracked is published for every successfully scored engagement
// action, unconditionally.
type EngagementTracked struct {
	BaseEvent
	ProfileID string                 `json:"profileId"`
	Action    string                 `json:"action"`
	Points    int                    `json:"points"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func (e EngagementTracked) EventName() string { return "leads.engagement.tracked" }
