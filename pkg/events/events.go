// Package events defines the domain event contract shared across aggregates
// and the messaging infrastructure.
package events

import "github.com/google/uuid"

// DomainEvent is implemented by every event an aggregate can emit.
type DomainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
}

// Collector is embedded in aggregates to accumulate domain events during
// state transitions.
type Collector struct {
	events []DomainEvent
}

// Record appends a domain event to the collector.
func (c *Collector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Drain returns the collected events and clears the internal slice.
func (c *Collector) Drain() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
