package analytics

import (
	"context"
	"testing"
	"time"

	"member_portal_backend/internal/events"
	"member_portal_backend/platform/logger"
)

type captureEnqueuer struct {
	payloads []EventPayload
}

func (c *captureEnqueuer) Enqueue(_ context.Context, payload EventPayload) error {
	c.payloads = append(c.payloads, payload)
	return nil
}

func TestEmitterTranslatesToExternalEventNames(t *testing.T) {
	enqueuer := &captureEnqueuer{}
	emitter := NewEmitter(enqueuer, logger.New("development"))
	bus := events.NewInMemoryBus(logger.New("development"))
	emitter.Subscribe(bus)

	occurred := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	domainEvents := []events.Event{
		events.LeadCreated{BaseEvent: events.BaseEventAt(occurred), LeadID: "lead-1", Email: "pat@example.com", Source: "webinar"},
		events.LeadStatusChanged{BaseEvent: events.BaseEventAt(occurred), ProfileID: "session-1", PreviousStatus: "visitor", NewStatus: "cold_lead", TotalScore: 67},
		events.EngagementTracked{BaseEvent: events.BaseEventAt(occurred), ProfileID: "session-1", Action: "tool_usage", Points: 50, Status: "cold_lead"},
	}
	for _, event := range domainEvents {
		if err := bus.PublishSync(context.Background(), event); err != nil {
			t.Fatalf("publish %s: %v", event.EventName(), err)
		}
	}

	want := []string{"lead_created", "lead_status_changed", "engagement_tracked"}
	if len(enqueuer.payloads) != len(want) {
		t.Fatalf("expected %d payloads, got %d", len(want), len(enqueuer.payloads))
	}
	for i, name := range want {
		if enqueuer.payloads[i].Name != name {
			t.Errorf("payload[%d].Name = %q, want %q", i, enqueuer.payloads[i].Name, name)
		}
		if !enqueuer.payloads[i].OccurredAt.Equal(occurred) {
			t.Errorf("payload[%d] timestamp = %v, want %v", i, enqueuer.payloads[i].OccurredAt, occurred)
		}
	}

	statusChange := enqueuer.payloads[1]
	if statusChange.Properties["newStatus"] != "cold_lead" || statusChange.Properties["totalScore"] != 67 {
		t.Fatalf("status change properties not carried: %+v", statusChange.Properties)
	}
}
