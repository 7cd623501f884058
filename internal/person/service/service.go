// Package service orchestrates directory operations: validation at the trust
// boundary via the domain wrappers, persistence through the store, and audit
// plus metrics on the side.
package service

import (
	"context"
	"log/slog"
	"time"

	personmetrics "persondir/internal/person/metrics"
	"persondir/internal/person/models"
	"persondir/pkg/domain"
	"persondir/pkg/platform/audit"
	"persondir/pkg/platform/audit/publisher"
)

// PersonStore is the persistence contract the service depends on. Satisfied
// by store.InMemory, store.Postgres, and store.Cached.
type PersonStore interface {
	Create(ctx context.Context, name domain.Name, surname domain.Surname, now time.Time) (*models.Person, error)
	FindByID(ctx context.Context, id domain.ID) (*models.Person, error)
	List(ctx context.Context) ([]*models.Person, error)
	Update(ctx context.Context, p *models.Person) error
	Delete(ctx context.Context, id domain.ID) error
}

type serviceConfig struct {
	logger         *slog.Logger
	metrics        *personmetrics.Metrics
	auditPublisher *publisher.Publisher
}

// Option configures the PersonService.
type Option func(*serviceConfig)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) {
		cfg.logger = logger
	}
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *personmetrics.Metrics) Option {
	return func(cfg *serviceConfig) {
		cfg.metrics = m
	}
}

// WithAuditPublisher attaches an audit trail. Without it mutations are not
// audited (development mode).
func WithAuditPublisher(p *publisher.Publisher) Option {
	return func(cfg *serviceConfig) {
		cfg.auditPublisher = p
	}
}

// emit records an audit event when a publisher is configured.
func (s *PersonService) emit(ctx context.Context, event audit.Event) error {
	if s.audit == nil {
		return nil
	}
	return s.audit.Emit(ctx, event)
}
