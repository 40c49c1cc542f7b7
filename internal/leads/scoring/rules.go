// Package scoring holds the engagement action rule table and the stage
// thresholds. Rules are pure data; classification is a pure function.
package scoring

import (
	"fmt"
	"os"

	"member_portal_backend/internal/leads/domain"

	"gopkg.in/yaml.v3"
)

// Category routes an action's points into one of the three profile scores.
type Category string

const (
	CategoryBehavioral  Category = "behavioral"
	CategoryDemographic Category = "demographic"
	CategoryEngagement  Category = "engagement"
)

// Stage thresholds compared against the sum of all three category scores.
const (
	ThresholdColdLead  = 50
	ThresholdCandidate = 200
	ThresholdHotLead   = 500
)

// Rule is the scoring entry for a single engagement action.
type Rule struct {
	Points   int      `yaml:"points"`
	Category Category `yaml:"category"`
	Weight   float64  `yaml:"weight"`
}

// defaultActions is the recognized action vocabulary. The names are the
// effective public API of the scoring system and must not be renamed.
var defaultActions = map[string]Rule{
	"page_view":            {Points: 1, Category: CategoryBehavioral, Weight: 1.0},
	"time_on_site":         {Points: 1, Category: CategoryBehavioral, Weight: 0.5},
	"scroll_depth":         {Points: 2, Category: CategoryBehavioral, Weight: 1.0},
	"email_captured":       {Points: 25, Category: CategoryDemographic, Weight: 2.0},
	"phone_captured":       {Points: 30, Category: CategoryDemographic, Weight: 2.0},
	"name_captured":        {Points: 10, Category: CategoryDemographic, Weight: 1.5},
	"tool_usage":           {Points: 50, Category: CategoryEngagement, Weight: 3.0},
	"assessment_completed": {Points: 75, Category: CategoryEngagement, Weight: 3.0},
	"content_engagement":   {Points: 15, Category: CategoryEngagement, Weight: 1.5},
	"webinar_registered":   {Points: 60, Category: CategoryEngagement, Weight: 2.5},
	"office_visit_booked":  {Points: 100, Category: CategoryEngagement, Weight: 3.0},
	"referral_made":        {Points: 40, Category: CategoryBehavioral, Weight: 2.0},
	"high_engagement":      {Points: 20, Category: CategoryBehavioral, Weight: 1.5},
}

// Rules is the immutable action rule table.
type Rules struct {
	actions map[string]Rule
}

// Default returns the built-in rule table.
func Default() *Rules {
	actions := make(map[string]Rule, len(defaultActions))
	for name, rule := range defaultActions {
		actions[name] = rule
	}
	return &Rules{actions: actions}
}

// Load returns the default table with per-action overrides applied from a
// YAML file. An empty path returns the defaults unchanged.
func Load(path string) (*Rules, error) {
	rules := Default()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring rules: %w", err)
	}

	var file struct {
		Actions map[string]Rule `yaml:"actions"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scoring rules: %w", err)
	}

	for name, rule := range file.Actions {
		if err := validateRule(name, rule); err != nil {
			return nil, err
		}
		rules.actions[name] = rule
	}

	return rules, nil
}

func validateRule(name string, rule Rule) error {
	switch rule.Category {
	case CategoryBehavioral, CategoryDemographic, CategoryEngagement:
	default:
		return fmt.Errorf("scoring rule %q: unknown category %q", name, rule.Category)
	}
	if rule.Points < 0 {
		return fmt.Errorf("scoring rule %q: negative points", name)
	}
	if rule.Weight < 0 {
		return fmt.Errorf("scoring rule %q: negative weight", name)
	}
	return nil
}

// Lookup returns the rule for an action. Unknown actions return ok=false;
// the caller logs a warning and performs no scoring.
func (r *Rules) Lookup(action string) (Rule, bool) {
	rule, ok := r.actions[action]
	return rule, ok
}

// Classify derives the lifecycle stage from a total score. Highest threshold
// is checked first; the function is monotone non-decreasing in the score.
func Classify(totalScore int) domain.LeadStatus {
	switch {
	case totalScore >= ThresholdHotLead:
		return domain.StatusHotLead
	case totalScore >= ThresholdCandidate:
		return domain.StatusCandidate
	case totalScore >= ThresholdColdLead:
		return domain.StatusColdLead
	default:
		return domain.StatusVisitor
	}
}
