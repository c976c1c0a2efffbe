// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// StyleSetChangedEvent fires when an index-family rule set gains or
	// mutates a rule. Payload identifies the region that changed.
	StyleSetChangedEvent EventType = "style-set-changed"
	// RulesClearedEvent fires when a region's rule list is emptied.
	RulesClearedEvent EventType = "rules-cleared"
	// RcAppliedEvent fires after a colour rc file has been (re)applied.
	RcAppliedEvent EventType = "rc-applied"
	// LogLineEvent carries a formatted log entry to UI subscribers.
	LogLineEvent EventType = "log-line"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
