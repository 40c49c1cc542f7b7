// Package analytics forwards lead domain events to an external analytics
// sink through an asynq delivery queue. Fire and forget: the lifecycle
// engine never observes delivery failures.
package analytics

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskAnalyticsEvent = "analytics.event"

// EventPayload is the queued representation of one domain event.
type EventPayload struct {
	Name       string                 `json:"name"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

func NewAnalyticsEventTask(payload EventPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsEvent, data), nil
}

func ParseAnalyticsEventPayload(task *asynq.Task) (EventPayload, error) {
	var payload EventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return EventPayload{}, err
	}
	return payload, nil
}
