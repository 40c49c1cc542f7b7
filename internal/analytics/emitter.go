package analytics

import (
	"context"

	"member_portal_backend/internal/events"
	"member_portal_backend/platform/logger"
)

// externalEventNames maps the namespaced bus names to the flat names of the
// external analytics contract. The internal names never leave the process.
var externalEventNames = map[string]string{
	events.LeadCreated{}.EventName():       "lead_created",
	events.LeadStatusChanged{}.EventName(): "lead_status_changed",
	events.EngagementTracked{}.EventName(): "engagement_tracked",
}

// EventEnqueuer queues analytics payloads for delivery.
type EventEnqueuer interface {
	Enqueue(ctx context.Context, payload EventPayload) error
}

// Emitter bridges the in-process event bus to the delivery queue.
type Emitter struct {
	enqueuer EventEnqueuer
	log      *logger.Logger
}

func NewEmitter(enqueuer EventEnqueuer, log *logger.Logger) *Emitter {
	return &Emitter{enqueuer: enqueuer, log: log}
}

// Subscribe registers the emitter for every lead domain event.
func (e *Emitter) Subscribe(bus events.Bus) {
	handler := events.HandlerFunc(e.handle)
	for name := range externalEventNames {
		bus.Subscribe(name, handler)
	}
}

func (e *Emitter) handle(ctx context.Context, event events.Event) error {
	payload := EventPayload{
		Name:       externalEventName(event.EventName()),
		Properties: eventProperties(event),
		OccurredAt: event.OccurredAt(),
	}

	if err := e.enqueuer.Enqueue(ctx, payload); err != nil {
		// Delivery is best-effort; the mutation that produced the event has
		// already completed.
		e.log.AnalyticsEvent(payload.Name, false)
		return err
	}

	e.log.AnalyticsEvent(payload.Name, true)
	return nil
}

func externalEventName(busName string) string {
	if external, ok := externalEventNames[busName]; ok {
		return external
	}
	return busName
}

func eventProperties(event events.Event) map[string]interface{} {
	switch typed := event.(type) {
	case events.LeadCreated:
		return map[string]interface{}{
			"leadId": typed.LeadID,
			"email":  typed.Email,
			"source": typed.Source,
		}
	case events.LeadStatusChanged:
		return map[string]interface{}{
			"profileId":      typed.ProfileID,
			"previousStatus": typed.PreviousStatus,
			"newStatus":      typed.NewStatus,
			"totalScore":     typed.TotalScore,
		}
	case events.EngagementTracked:
		return map[string]interface{}{
			"profileId": typed.ProfileID,
			"action":    typed.Action,
			"points":    typed.Points,
			"status":    typed.Status,
		}
	default:
		return nil
	}
}
