// Package events provides the in-process event infrastructure the lead
// engine publishes on: profile mutations and lead creation raise events here,
// and side-effect modules (analytics delivery, future notification surfaces)
// subscribe without the engine knowing them. This is part of the platform
// layer and contains no business logic; the concrete event types live in
// internal/events.
package events

import (
	"context"
	"time"
)

// Event is one fact about the lead funnel, named and timestamped. Names are
// dot-namespaced per context ("leads.lead.created"); external contracts map
// them at their own boundary.
type Event interface {
	// EventName returns the namespaced identifier for the event type.
	EventName() string
	// OccurredAt returns when the fact the event describes happened.
	OccurredAt() time.Time
}

// BaseEvent carries the occurrence timestamp shared by every event type.
// Embed it and implement EventName on the concrete type.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps an event with the current wall-clock time.
func NewBaseEvent() BaseEvent {
	return BaseEventAt(time.Now())
}

// BaseEventAt stamps an event with an explicit time. Publishers that run on
// an injected clock use this so event timestamps agree with the state they
// describe.
func BaseEventAt(t time.Time) BaseEvent {
	return BaseEvent{Timestamp: t}
}

// Handler consumes events of the types it subscribed to. A handler error
// never reaches the publisher on the async path; the bus logs it.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus decouples the lead engine from its subscribers.
type Bus interface {
	// Publish dispatches the event to every subscribed handler
	// asynchronously. Fire and forget.
	Publish(ctx context.Context, event Event)

	// PublishSync dispatches inline and returns the first handler error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for the event name as returned by
	// Event.EventName.
	Subscribe(eventName string, handler Handler)
}
