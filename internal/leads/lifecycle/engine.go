// Package lifecycle orchestrates lead scoring: it routes engagement actions
// through the rule table, maintains category scores and lifecycle stage,
// recomputes predictions after every mutation, and emits domain events.
package lifecycle

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"member_portal_backend/internal/events"
	"member_portal_backend/internal/leads/domain"
	"member_portal_backend/internal/leads/prediction"
	"member_portal_backend/internal/leads/scoring"
	"member_portal_backend/platform/apperr"
	"member_portal_backend/platform/logger"
	"member_portal_backend/platform/phone"
)

// LeadRecords persists the immutable creation-time lead snapshots.
type LeadRecords interface {
	CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	GetByEmail(ctx context.Context, email string) (domain.Lead, error)
	List(ctx context.Context, limit, offset int) ([]domain.Lead, error)
}

// ProfileStore is the live profile ledger. Mutate serializes read-modify-write
// cycles per profile id.
type ProfileStore interface {
	Get(id string) *domain.LeadProfile
	GetOrCreate(ctx context.Context, id, source string, attribution *domain.AttributionData) *domain.LeadProfile
	Mutate(ctx context.Context, id string, fn func(*domain.LeadProfile)) (*domain.LeadProfile, bool)
}

// ConversionTrigger runs after each scored action, before the tracked event is
// published. Extension point for follow-up side effects; the default is a
// no-op.
type ConversionTrigger func(ctx context.Context, profile *domain.LeadProfile, activity domain.EngagementActivity)

// Engine is the lead lifecycle orchestrator.
type Engine struct {
	records      LeadRecords
	profiles     ProfileStore
	rules        *scoring.Rules
	bus          events.Bus
	log          *logger.Logger
	now          func() time.Time
	onConversion ConversionTrigger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithConversionTrigger installs the post-scoring side-effect hook.
func WithConversionTrigger(trigger ConversionTrigger) Option {
	return func(e *Engine) { e.onConversion = trigger }
}

func NewEngine(records LeadRecords, profiles ProfileStore, rules *scoring.Rules, bus events.Bus, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		records:  records,
		profiles: profiles,
		rules:    rules,
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateLeadInput is the caller-supplied lead data. Email format is the
// caller's responsibility.
type CreateLeadInput struct {
	Email  string
	Name   string
	Phone  string
	Source string
}

// CreateLead generates a new lead record plus its profile ledger, both keyed
// by the same fresh id, and publishes a lead-created event. Creation is
// idempotent per email: re-submitting a known address returns the original
// record without a new event.
func (e *Engine) CreateLead(ctx context.Context, input CreateLeadInput, attribution *domain.AttributionData) (domain.Lead, error) {
	if existing, err := e.records.GetByEmail(ctx, input.Email); err == nil {
		return existing, nil
	}

	id := uuid.New()
	now := e.now().UTC()

	lead := domain.Lead{
		ID:        id,
		Email:     input.Email,
		Name:      input.Name,
		Phone:     phone.NormalizeE164(input.Phone),
		Source:    input.Source,
		Status:    domain.StatusVisitor,
		Score:     0,
		CreatedAt: now,
	}

	created, err := e.records.CreateLead(ctx, lead)
	if err != nil {
		e.log.DatabaseError("create_lead", err)
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "could not create lead", err)
	}

	e.profiles.GetOrCreate(ctx, id.String(), input.Source, attribution)

	e.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.BaseEventAt(now),
		LeadID:    id.String(),
		Email:     created.Email,
		Source:    created.Source,
	})

	return created, nil
}

// GetLead returns the immutable creation record.
func (e *Engine) GetLead(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := e.records.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindNotFound, "lead not found", err)
	}
	return lead, nil
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListLeads returns creation records newest first. Limit and offset are
// clamped to sane bounds.
func (e *Engine) ListLeads(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, err := e.records.List(ctx, limit, offset)
	if err != nil {
		e.log.DatabaseError("list_leads", err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not list leads", err)
	}
	return records, nil
}

// GetLeadProfile returns the profile for the session, creating a default one
// on first sight. Attribution is captured only at that first creation.
func (e *Engine) GetLeadProfile(ctx context.Context, sessionID string, attribution *domain.AttributionData) *domain.LeadProfile {
	return e.profiles.GetOrCreate(ctx, sessionID, "", attribution)
}

// UpdateLeadScore adds points to the engagement score of an existing profile.
// The one operation with a hard precondition: a missing profile is an error,
// never a lazy create.
func (e *Engine) UpdateLeadScore(ctx context.Context, leadID string, points int) (*domain.LeadProfile, error) {
	var transition *events.LeadStatusChanged

	updated, ok := e.profiles.Mutate(ctx, leadID, func(p *domain.LeadProfile) {
		p.EngagementScore += points
		p.LastActivity = e.now().UTC()
		transition = e.refreshDerivedState(p)
	})
	if !ok {
		return nil, apperr.NotFound("no profile exists for lead " + leadID)
	}

	if transition != nil {
		e.bus.Publish(ctx, *transition)
	}

	return updated, nil
}

// TrackEngagement scores one action against the session's profile. Unknown
// actions log a warning and change nothing. Engagement-category points route
// into engagementScore weighted and additionally half-count into
// behavioralScore; the other categories add points directly.
func (e *Engine) TrackEngagement(ctx context.Context, sessionID, action string, metadata map[string]interface{}, pageURL string) {
	rule, ok := e.rules.Lookup(action)
	if !ok {
		e.log.UnknownAction(action, sessionID)
		return
	}

	points := rule.Points
	if multiplier, ok := metadataMultiplier(metadata); ok {
		points = int(math.Floor(float64(rule.Points) * multiplier))
	}

	e.profiles.GetOrCreate(ctx, sessionID, "", nil)

	var (
		transition *events.LeadStatusChanged
		activity   domain.EngagementActivity
	)

	updated, _ := e.profiles.Mutate(ctx, sessionID, func(p *domain.LeadProfile) {
		switch rule.Category {
		case scoring.CategoryEngagement:
			p.EngagementScore += int(math.Floor(float64(points) * rule.Weight))
			p.BehavioralScore += int(math.Floor(float64(points) * 0.5))
		case scoring.CategoryDemographic:
			p.DemographicScore += points
		default:
			p.BehavioralScore += points
		}

		activity = domain.EngagementActivity{
			Timestamp: e.now().UTC(),
			Action:    action,
			Points:    points,
			PageURL:   pageURL,
			Metadata:  metadata,
		}
		p.Activities = append(p.Activities, activity)
		p.LastActivity = activity.Timestamp

		transition = e.refreshDerivedState(p)
	})

	if e.onConversion != nil {
		e.onConversion(ctx, updated, activity)
	}

	if transition != nil {
		e.bus.Publish(ctx, *transition)
	}

	e.bus.Publish(ctx, events.EngagementTracked{
		BaseEvent: events.BaseEventAt(e.now().UTC()),
		ProfileID: sessionID,
		Action:    action,
		Points:    points,
		Status:    string(updated.Status),
		Metadata:  metadata,
	})
}

// CalculateLeadStatus previews the stage for a profile snapshot without
// mutating anything.
func (e *Engine) CalculateLeadStatus(profile *domain.LeadProfile) domain.LeadStatus {
	return scoring.Classify(profile.TotalScore())
}

// refreshDerivedState reclassifies the stage and recomputes readiness and
// predictions in place. Returns the transition event to publish, or nil when
// the stage did not change. Must run inside a store mutation.
func (e *Engine) refreshDerivedState(p *domain.LeadProfile) *events.LeadStatusChanged {
	previous := p.Status
	p.Status = scoring.Classify(p.TotalScore())

	now := e.now().UTC()
	p.ConversionReadiness = prediction.ConversionReadiness(p, now)
	p.Predictions = prediction.Compute(p, now)

	if p.Status == previous {
		return nil
	}
	return &events.LeadStatusChanged{
		BaseEvent:      events.BaseEventAt(now),
		ProfileID:      p.ID,
		PreviousStatus: string(previous),
		NewStatus:      string(p.Status),
		TotalScore:     p.TotalScore(),
	}
}

func metadataMultiplier(metadata map[string]interface{}) (float64, bool) {
	if metadata == nil {
		return 0, false
	}
	switch v := metadata["multiplier"].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
