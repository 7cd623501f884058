// Package publisher emits audit events to a store, synchronously by default
// or through a bounded async buffer when the caller prefers latency over
// delivery guarantees.
package publisher

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"persondir/pkg/domain"
	"persondir/pkg/platform/audit"
	"persondir/pkg/requestcontext"
)

// Publisher writes audit events to a Store.
//
// Sync mode (default): Emit blocks until the store write completes and
// returns its error. Use when the business operation must not proceed on
// audit failure.
//
// Async mode (WithAsyncBuffer): Emit enqueues and returns immediately; a
// full buffer drops the event with a warning. Close drains the buffer.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	ch        chan audit.Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given
// buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.ch = make(chan audit.Event, size)
	}
}

// WithLogger sets a logger for drop and write-failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher backed by the given store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.ch != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records an event. Missing ID and Timestamp are filled in; the
// request ID is taken from ctx when the event does not carry one.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	if p.ch == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.ch <- event:
		return nil
	default:
		p.logger.Warn("audit buffer full, dropping event",
			"action", string(event.Action),
			"person_id", event.PersonID.String(),
		)
		return nil
	}
}

// List returns the audit trail for one person.
func (p *Publisher) List(ctx context.Context, personID domain.ID) ([]audit.Event, error) {
	return p.store.ListByPerson(ctx, personID)
}

// Close drains any buffered events and stops the background writer.
// Safe to call multiple times.
func (p *Publisher) Close() {
	if p.ch == nil {
		return
	}
	p.closeOnce.Do(func() {
		close(p.ch)
	})
	p.wg.Wait()
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.ch {
		// Detached from the request context on purpose: the request may be
		// gone by the time the event is written.
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Error("audit write failed",
				"action", string(event.Action),
				"person_id", event.PersonID.String(),
				"error", err,
			)
		}
	}
}
