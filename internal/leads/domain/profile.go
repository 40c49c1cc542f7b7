package domain

import "time"

// AttributionData captures the acquisition context at profile creation.
// Set once, immutable thereafter.
type AttributionData struct {
	ContentID string `json:"content_id,omitempty"`
	MemberID  string `json:"member_id,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
}

// EngagementActivity is one scored action in a profile's history.
// Immutable once appended.
type EngagementActivity struct {
	Timestamp time.Time              `json:"timestamp"`
	Action    string                 `json:"action"`
	Points    int                    `json:"points"`
	PageURL   string                 `json:"page_url,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// LeadPredictions is the derived predictive snapshot. It is always recomputed
// whole from the current profile state, never partially updated.
type LeadPredictions struct {
	ConversionProbability float64  `json:"conversionProbability"`
	TimeToConversion      float64  `json:"timeToConversion"`
	BestConversionPath    []string `json:"bestConversionPath"`
	NextBestAction        string   `json:"nextBestAction"`
	RiskOfChurn           float64  `json:"riskOfChurn"`
}

// LeadProfile is the internal scoring ledger tracked per session. The activity
// log is unbounded by design: entries accrue only from explicit user actions
// and profiles are session-scoped.
type LeadProfile struct {
	ID                  string              `json:"id"`
	Status              LeadStatus          `json:"status"`
	EngagementScore     int                 `json:"engagementScore"`
	DemographicScore    int                 `json:"demographicScore"`
	BehavioralScore     int                 `json:"behavioralScore"`
	ConversionReadiness float64             `json:"conversionReadiness"`
	LastActivity        time.Time           `json:"lastActivity"`
	Source              string              `json:"source"`
	Attribution         *AttributionData    `json:"attributionData,omitempty"`
	Activities          []EngagementActivity `json:"activities"`
	Predictions         LeadPredictions     `json:"predictions"`
}

// TotalScore is the sum of the three category scores, the input to stage
// classification.
func (p *LeadProfile) TotalScore() int {
	return p.EngagementScore + p.DemographicScore + p.BehavioralScore
}

// HasAction reports whether the activity history contains the action.
func (p *LeadProfile) HasAction(action string) bool {
	for _, activity := range p.Activities {
		if activity.Action == action {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Reads hand out clones so callers can never
// mutate stored state through a returned profile.
func (p *LeadProfile) Clone() *LeadProfile {
	if p == nil {
		return nil
	}

	copied := *p

	if p.Attribution != nil {
		attribution := *p.Attribution
		copied.Attribution = &attribution
	}

	copied.Activities = make([]EngagementActivity, len(p.Activities))
	copy(copied.Activities, p.Activities)
	for i, activity := range p.Activities {
		if activity.Metadata == nil {
			continue
		}
		metadata := make(map[string]interface{}, len(activity.Metadata))
		for key, value := range activity.Metadata {
			metadata[key] = value
		}
		copied.Activities[i].Metadata = metadata
	}

	copied.Predictions.BestConversionPath = append([]string(nil), p.Predictions.BestConversionPath...)

	return &copied
}
