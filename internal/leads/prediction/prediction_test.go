package prediction

import (
	"math"
	"testing"
	"time"

	"member_portal_backend/internal/leads/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecencyFactorBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		hoursAgo float64
		want     float64
	}{
		{0, 1},
		{12, 0.5},
		{24, 0},
		{48, 0},
	}

	for _, tc := range cases {
		last := now.Add(-time.Duration(tc.hoursAgo * float64(time.Hour)))
		if got := RecencyFactor(last, now); !almostEqual(got, tc.want) {
			t.Errorf("RecencyFactor(%vh ago) = %v, want %v", tc.hoursAgo, got, tc.want)
		}
	}
}

func TestDiversityFactorSaturates(t *testing.T) {
	activities := make([]domain.EngagementActivity, 0, 30)
	for i := 0; i < 3; i++ {
		activities = append(activities, domain.EngagementActivity{Action: "page_view"})
	}
	if got := DiversityFactor(activities); !almostEqual(got, 0.1) {
		t.Fatalf("one distinct action should yield 0.1, got %v", got)
	}

	distinct := []string{
		"page_view", "time_on_site", "scroll_depth", "email_captured",
		"phone_captured", "name_captured", "tool_usage", "assessment_completed",
		"content_engagement", "webinar_registered", "office_visit_booked", "referral_made",
	}
	activities = activities[:0]
	for _, action := range distinct {
		activities = append(activities, domain.EngagementActivity{Action: action})
	}
	if got := DiversityFactor(activities); got != 1 {
		t.Fatalf("12 distinct actions should saturate at 1, got %v", got)
	}
}

func TestTimeInvestmentFactor(t *testing.T) {
	activities := []domain.EngagementActivity{
		{Action: "time_on_site"},
		{Action: "time_on_site"},
		{Action: "page_view"},
	}
	if got := TimeInvestmentFactor(activities); !almostEqual(got, 2.0/300) {
		t.Fatalf("expected 2/300, got %v", got)
	}

	many := make([]domain.EngagementActivity, 400)
	for i := range many {
		many[i] = domain.EngagementActivity{Action: "time_on_site"}
	}
	if got := TimeInvestmentFactor(many); got != 1 {
		t.Fatalf("400 time_on_site events should saturate at 1, got %v", got)
	}
}

func TestConversionReadinessWeighting(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// Fresh activity, one distinct action, no time_on_site, 500 score mass:
	// 0.4*0.5 + 0.2*1 + 0.2*0.1 + 0.2*0 = 0.42
	profile := &domain.LeadProfile{
		EngagementScore:  400,
		DemographicScore: 100,
		LastActivity:     now,
		Activities:       []domain.EngagementActivity{{Action: "tool_usage"}},
	}

	if got := ConversionReadiness(profile, now); !almostEqual(got, 0.42) {
		t.Fatalf("ConversionReadiness = %v, want 0.42", got)
	}
}

func TestConversionReadinessScoreRatioCappedBeforeWeighting(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// 5000 score mass must contribute exactly 0.4, not 5*0.4.
	profile := &domain.LeadProfile{
		EngagementScore: 5000,
		LastActivity:    now.Add(-48 * time.Hour),
	}

	if got := ConversionReadiness(profile, now); !almostEqual(got, 0.4) {
		t.Fatalf("capped score mass should yield 0.4, got %v", got)
	}
}

func TestComputeConversionPathExcludesPerformedActions(t *testing.T) {
	now := time.Now()
	profile := &domain.LeadProfile{
		LastActivity: now,
		Activities: []domain.EngagementActivity{
			{Action: "tool_usage"},
			{Action: "email_captured"},
		},
	}

	predictions := Compute(profile, now)

	want := []string{"assessment_completed", "webinar_registered", "office_visit_booked"}
	if len(predictions.BestConversionPath) != len(want) {
		t.Fatalf("path length = %d, want %d: %v", len(predictions.BestConversionPath), len(want), predictions.BestConversionPath)
	}
	for i, action := range want {
		if predictions.BestConversionPath[i] != action {
			t.Fatalf("path[%d] = %q, want %q", i, predictions.BestConversionPath[i], action)
		}
	}
	if predictions.NextBestAction != "Complete the readiness assessment" {
		t.Fatalf("unexpected next best action %q", predictions.NextBestAction)
	}
}

func TestComputeFallsBackWhenPathExhausted(t *testing.T) {
	now := time.Now()
	profile := &domain.LeadProfile{LastActivity: now}
	for _, action := range []string{"tool_usage", "email_captured", "assessment_completed", "webinar_registered", "office_visit_booked"} {
		profile.Activities = append(profile.Activities, domain.EngagementActivity{Action: action})
	}

	predictions := Compute(profile, now)
	if len(predictions.BestConversionPath) != 0 {
		t.Fatalf("expected empty path, got %v", predictions.BestConversionPath)
	}
	if predictions.NextBestAction != "Schedule a consultation" {
		t.Fatalf("unexpected fallback action %q", predictions.NextBestAction)
	}
}

func TestComputeProbabilityCap(t *testing.T) {
	now := time.Now()
	profile := &domain.LeadProfile{
		EngagementScore:  900,
		DemographicScore: 200,
		LastActivity:     now,
	}
	for _, action := range []string{"tool_usage", "email_captured", "assessment_completed", "webinar_registered", "office_visit_booked", "page_view", "scroll_depth", "referral_made", "high_engagement", "content_engagement"} {
		profile.Activities = append(profile.Activities, domain.EngagementActivity{Action: action})
	}
	for i := 0; i < 300; i++ {
		profile.Activities = append(profile.Activities, domain.EngagementActivity{Action: "time_on_site"})
	}

	predictions := Compute(profile, now)
	if predictions.ConversionProbability != 0.95 {
		t.Fatalf("probability should cap at 0.95, got %v", predictions.ConversionProbability)
	}
	if predictions.TimeToConversion != 7 {
		t.Fatalf("time to conversion should floor at 7, got %v", predictions.TimeToConversion)
	}
}

func TestChurnRiskBounds(t *testing.T) {
	now := time.Now()

	stale := &domain.LeadProfile{LastActivity: now.Add(-72 * time.Hour)}
	predictions := Compute(stale, now)
	if predictions.RiskOfChurn != 1 {
		t.Fatalf("stale zero-score profile should have churn risk 1, got %v", predictions.RiskOfChurn)
	}

	engaged := &domain.LeadProfile{EngagementScore: 250, LastActivity: now}
	predictions = Compute(engaged, now)
	if predictions.RiskOfChurn != 0 {
		t.Fatalf("fresh engaged profile should have churn risk 0, got %v", predictions.RiskOfChurn)
	}
}

func TestInitialSeed(t *testing.T) {
	seed := Initial()

	if seed.ConversionProbability != 0.1 || seed.TimeToConversion != 30 || seed.RiskOfChurn != 0.8 {
		t.Fatalf("unexpected seed values: %+v", seed)
	}
	want := []string{"tool_usage", "email_captured", "webinar_registered"}
	for i, action := range want {
		if seed.BestConversionPath[i] != action {
			t.Fatalf("seed path[%d] = %q, want %q", i, seed.BestConversionPath[i], action)
		}
	}
	if seed.NextBestAction != "Take an assessment tool" {
		t.Fatalf("unexpected seed next action %q", seed.NextBestAction)
	}
}
