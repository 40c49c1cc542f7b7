// Package prediction computes the derived predictive metrics for a profile
// snapshot. Every function is pure and deterministic given its inputs; the
// lifecycle engine recomputes the whole snapshot after each mutation.
package prediction

import (
	"time"

	"member_portal_backend/internal/leads/domain"
)

// conversionPath is the fixed ideal action sequence. BestConversionPath is
// this sequence with already-performed actions removed, order preserved.
var conversionPath = []string{
	"tool_usage",
	"email_captured",
	"assessment_completed",
	"webinar_registered",
	"office_visit_booked",
}

// nextActionLabels maps the head of the remaining path to the label shown
// to the member-facing UI.
var nextActionLabels = map[string]string{
	"tool_usage":           "Take an assessment tool",
	"email_captured":       "Download the free guide",
	"assessment_completed": "Complete the readiness assessment",
	"webinar_registered":   "Register for the next webinar",
	"office_visit_booked":  "Book an office visit",
}

// fallbackNextAction is used once the entire path has been completed.
const fallbackNextAction = "Schedule a consultation"

// RecencyFactor decays linearly from 1 to 0 over 24 hours since the last
// activity, clamped at 0.
func RecencyFactor(lastActivity, now time.Time) float64 {
	hoursSince := now.Sub(lastActivity).Hours()
	factor := 1 - hoursSince/24
	if factor < 0 {
		return 0
	}
	return factor
}

// DiversityFactor rewards breadth of distinct actions, saturating at 10.
func DiversityFactor(activities []domain.EngagementActivity) float64 {
	distinct := make(map[string]struct{}, len(activities))
	for _, activity := range activities {
		distinct[activity.Action] = struct{}{}
	}

	factor := float64(len(distinct)) / 10
	if factor > 1 {
		return 1
	}
	return factor
}

// TimeInvestmentFactor rewards accumulated time_on_site events, saturating
// at 300.
func TimeInvestmentFactor(activities []domain.EngagementActivity) float64 {
	count := 0
	for _, activity := range activities {
		if activity.Action == "time_on_site" {
			count++
		}
	}

	factor := float64(count) / 300
	if factor > 1 {
		return 1
	}
	return factor
}

// ConversionReadiness is the [0,1] composite of score mass, recency,
// diversity, and time investment. The score ratio is capped at 1 before the
// 0.4 weighting is applied; the final sum is capped at 1.
func ConversionReadiness(profile *domain.LeadProfile, now time.Time) float64 {
	scoreRatio := float64(profile.EngagementScore+profile.DemographicScore) / 1000
	if scoreRatio > 1 {
		scoreRatio = 1
	}

	readiness := 0.4*scoreRatio +
		0.2*RecencyFactor(profile.LastActivity, now) +
		0.2*DiversityFactor(profile.Activities) +
		0.2*TimeInvestmentFactor(profile.Activities)

	if readiness > 1 {
		return 1
	}
	return readiness
}

// Compute builds a fresh predictions snapshot from the profile state.
func Compute(profile *domain.LeadProfile, now time.Time) domain.LeadPredictions {
	readiness := ConversionReadiness(profile, now)

	probability := readiness * 1.2
	if probability > 0.95 {
		probability = 0.95
	}

	timeToConversion := 30 - readiness*25
	if timeToConversion < 7 {
		timeToConversion = 7
	}

	path := remainingPath(profile)

	nextAction := fallbackNextAction
	if len(path) > 0 {
		if label, ok := nextActionLabels[path[0]]; ok {
			nextAction = label
		}
	}

	return domain.LeadPredictions{
		ConversionProbability: probability,
		TimeToConversion:      timeToConversion,
		BestConversionPath:    path,
		NextBestAction:        nextAction,
		RiskOfChurn:           churnRisk(profile, now),
	}
}

// Initial returns the fixed seed snapshot for a brand-new profile.
func Initial() domain.LeadPredictions {
	return domain.LeadPredictions{
		ConversionProbability: 0.1,
		TimeToConversion:      30,
		BestConversionPath:    []string{"tool_usage", "email_captured", "webinar_registered"},
		NextBestAction:        "Take an assessment tool",
		RiskOfChurn:           0.8,
	}
}

func remainingPath(profile *domain.LeadProfile) []string {
	path := make([]string, 0, len(conversionPath))
	for _, action := range conversionPath {
		if !profile.HasAction(action) {
			path = append(path, action)
		}
	}
	return path
}

func churnRisk(profile *domain.LeadProfile, now time.Time) float64 {
	engagement := float64(profile.EngagementScore) / 100
	if engagement > 1 {
		engagement = 1
	}

	risk := 1 - (RecencyFactor(profile.LastActivity, now)*0.5 + engagement*0.5)
	if risk < 0 {
		return 0
	}
	if risk > 1 {
		return 1
	}
	return risk
}
