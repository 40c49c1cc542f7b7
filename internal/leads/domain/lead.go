package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead is the external-facing record produced once at creation. It is an
// immutable creation-time snapshot: Score is the score at creation and does
// not track the profile's evolving scores afterwards. The live ledger for the
// same id is the LeadProfile.
type Lead struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Source    string     `json:"source"`
	Status    LeadStatus `json:"status"`
	Score     int        `json:"score"`
	CreatedAt time.Time  `json:"createdAt"`
}
