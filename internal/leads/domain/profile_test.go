package domain

import (
	"testing"
	"time"
)

func TestCloneIsolatesNestedState(t *testing.T) {
	original := &LeadProfile{
		ID:     "session-1",
		Status: StatusColdLead,
		Attribution: &AttributionData{
			ContentID: "guide-7",
			Platform:  "newsletter",
		},
		Activities: []EngagementActivity{
			{
				Timestamp: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
				Action:    "tool_usage",
				Points:    50,
				Metadata:  map[string]interface{}{"tool": "mortgage-calculator"},
			},
		},
		Predictions: LeadPredictions{
			BestConversionPath: []string{"email_captured", "assessment_completed"},
		},
	}

	clone := original.Clone()
	clone.Attribution.Platform = "ads"
	clone.Activities[0].Metadata["tool"] = "overwritten"
	clone.Activities = append(clone.Activities, EngagementActivity{Action: "page_view"})
	clone.Predictions.BestConversionPath[0] = "overwritten"

	if original.Attribution.Platform != "newsletter" {
		t.Fatalf("attribution mutated through clone: %+v", original.Attribution)
	}
	if original.Activities[0].Metadata["tool"] != "mortgage-calculator" {
		t.Fatalf("activity metadata mutated through clone: %+v", original.Activities[0].Metadata)
	}
	if len(original.Activities) != 1 {
		t.Fatalf("activity list mutated through clone: %d entries", len(original.Activities))
	}
	if original.Predictions.BestConversionPath[0] != "email_captured" {
		t.Fatalf("prediction path mutated through clone: %v", original.Predictions.BestConversionPath)
	}
}

func TestCloneNilReceiver(t *testing.T) {
	var profile *LeadProfile
	if profile.Clone() != nil {
		t.Fatal("nil profile should clone to nil")
	}
}
