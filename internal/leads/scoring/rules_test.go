package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"member_portal_backend/internal/leads/domain"
)

func TestClassifyThresholdBoundaries(t *testing.T) {
	cases := []struct {
		total int
		want  domain.LeadStatus
	}{
		{0, domain.StatusVisitor},
		{49, domain.StatusVisitor},
		{50, domain.StatusColdLead},
		{199, domain.StatusColdLead},
		{200, domain.StatusCandidate},
		{499, domain.StatusCandidate},
		{500, domain.StatusHotLead},
		{100000, domain.StatusHotLead},
	}

	for _, tc := range cases {
		if got := Classify(tc.total); got != tc.want {
			t.Errorf("Classify(%d) = %q, want %q", tc.total, got, tc.want)
		}
	}
}

func TestClassifyIsMonotone(t *testing.T) {
	prev := Classify(0)
	for total := 1; total <= 600; total++ {
		current := Classify(total)
		if current.Rank() < prev.Rank() {
			t.Fatalf("Classify decreased at %d: %q -> %q", total, prev, current)
		}
		prev = current
	}
}

func TestLookupKnownAndUnknownActions(t *testing.T) {
	rules := Default()

	rule, ok := rules.Lookup("tool_usage")
	if !ok {
		t.Fatal("expected tool_usage to be a known action")
	}
	if rule.Points != 50 || rule.Category != CategoryEngagement || rule.Weight != 3.0 {
		t.Fatalf("unexpected tool_usage rule: %+v", rule)
	}

	if _, ok := rules.Lookup("not_a_real_action"); ok {
		t.Fatal("expected not_a_real_action to be unknown")
	}
}

func TestDefaultCoversActionVocabulary(t *testing.T) {
	vocabulary := []string{
		"page_view", "time_on_site", "scroll_depth", "email_captured",
		"phone_captured", "name_captured", "tool_usage", "assessment_completed",
		"content_engagement", "webinar_registered", "office_visit_booked",
		"referral_made", "high_engagement",
	}

	rules := Default()
	for _, action := range vocabulary {
		if _, ok := rules.Lookup(action); !ok {
			t.Errorf("action %q missing from default rules", action)
		}
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	contents := "actions:\n  tool_usage: {points: 80, category: engagement, weight: 2.0}\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rule, ok := rules.Lookup("tool_usage")
	if !ok {
		t.Fatal("tool_usage missing after override")
	}
	if rule.Points != 80 || rule.Weight != 2.0 {
		t.Fatalf("override not applied: %+v", rule)
	}

	// Untouched actions keep their defaults.
	if rule, _ := rules.Lookup("page_view"); rule.Points != 1 {
		t.Fatalf("page_view default changed: %+v", rule)
	}
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	contents := "actions:\n  tool_usage: {points: 80, category: mystery, weight: 2.0}\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
