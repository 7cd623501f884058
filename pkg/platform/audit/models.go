// Package audit captures who changed what in the directory. Events are
// emitted from domain logic and kept transport-agnostic so stores and sinks
// can fan out.
package audit

import (
	"context"
	"time"

	"persondir/pkg/domain"
)

// Action identifies the kind of directory change an event records.
type Action string

const (
	ActionPersonRegistered Action = "person_registered"
	ActionPersonRenamed    Action = "person_renamed"
	ActionPersonDeleted    Action = "person_deleted"
)

// Event records one mutation of the directory.
type Event struct {
	// ID is assigned by the publisher when empty.
	ID        string
	Timestamp time.Time
	PersonID  domain.ID
	Action    Action
	// Actor is the authenticated principal that performed the change,
	// empty when no principal is attached to the context.
	Actor string
	// RequestID correlates the event with the HTTP request that caused it.
	RequestID string
	Detail    string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByPerson(ctx context.Context, personID domain.ID) ([]Event, error)
}
