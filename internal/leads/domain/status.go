// Package domain provides core types and business rules for the leads
// bounded context.
package domain

// LeadStatus is the coarse lifecycle bucket a profile occupies. It is always
// derived from the total score against fixed thresholds; it is cached on the
// profile but never an independent source of truth.
type LeadStatus string

const (
	StatusVisitor   LeadStatus = "visitor"
	StatusColdLead  LeadStatus = "cold_lead"
	StatusCandidate LeadStatus = "candidate"
	StatusHotLead   LeadStatus = "hot_lead"
)

var statusRank = map[LeadStatus]int{
	StatusVisitor:   0,
	StatusColdLead:  1,
	StatusCandidate: 2,
	StatusHotLead:   3,
}

// Rank returns the ordinal position of the status in the lifecycle.
// Unknown values rank below visitor.
func (s LeadStatus) Rank() int {
	if rank, ok := statusRank[s]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether s is at or past the given stage.
func (s LeadStatus) AtLeast(other LeadStatus) bool {
	return s.Rank() >= other.Rank()
}
