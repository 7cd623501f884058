package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	personmetrics "persondir/internal/person/metrics"
	"persondir/internal/person/models"
	"persondir/pkg/domain"
	dErrors "persondir/pkg/domain-errors"
	"persondir/pkg/platform/audit"
	"persondir/pkg/platform/audit/publisher"
	"persondir/pkg/platform/sentinel"
	"persondir/pkg/requestcontext"
)

// PersonService owns the directory lifecycle. All raw input crosses into the
// domain exactly once, through the wrapper constructors; past that point the
// service only moves already-valid values around.
type PersonService struct {
	persons PersonStore
	logger  *slog.Logger
	metrics *personmetrics.Metrics
	audit   *publisher.Publisher
}

// NewPersonService creates the service around a store.
func NewPersonService(persons PersonStore, opts ...Option) *PersonService {
	cfg := &serviceConfig{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &PersonService{
		persons: persons,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		audit:   cfg.auditPublisher,
	}
}

// Register validates the raw fields and adds a new entry to the directory.
//
// Validation is first-failure-wins: the name is wrapped before the surname,
// so when both are invalid the caller sees the name error. The store assigns
// the ID, so the aggregate is only ever built from valid parts.
func (s *PersonService) Register(ctx context.Context, rawName, rawSurname string) (*models.Person, error) {
	start := time.Now()

	name, err := domain.ParseName(rawName)
	if err != nil {
		s.metrics.IncrementValidationFailure()
		return nil, err
	}
	surname, err := domain.ParseSurname(rawSurname)
	if err != nil {
		s.metrics.IncrementValidationFailure()
		return nil, err
	}

	p, err := s.persons.Create(ctx, name, surname, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register person")
	}

	if err := s.emit(ctx, audit.Event{
		PersonID: p.ID,
		Action:   audit.ActionPersonRegistered,
		Actor:    requestcontext.Actor(ctx),
		Detail:   p.PersonRecord.String(),
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit registration")
	}

	s.metrics.IncrementRegistered()
	s.metrics.ObserveRegister(start)
	return p, nil
}

// Get returns one directory entry.
func (s *PersonService) Get(ctx context.Context, id domain.ID) (*models.Person, error) {
	start := time.Now()
	p, err := s.persons.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	s.metrics.ObserveLookup(start)
	return p, nil
}

// List returns all directory entries ordered by ID.
func (s *PersonService) List(ctx context.Context) ([]*models.Person, error) {
	persons, err := s.persons.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list persons")
	}
	return persons, nil
}

// Rename replaces the name and surname of an entry. The stored record is
// never mutated: a new record value is built from the existing one and
// swapped in, so a failed validation leaves the directory untouched.
func (s *PersonService) Rename(ctx context.Context, id domain.ID, rawName, rawSurname string) (*models.Person, error) {
	name, err := domain.ParseName(rawName)
	if err != nil {
		s.metrics.IncrementValidationFailure()
		return nil, err
	}
	surname, err := domain.ParseSurname(rawSurname)
	if err != nil {
		s.metrics.IncrementValidationFailure()
		return nil, err
	}

	current, err := s.persons.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	before := current.PersonRecord
	updated := current.WithRecord(before.WithName(name).WithSurname(surname), requestcontext.Now(ctx))
	if err := s.persons.Update(ctx, &updated); err != nil {
		return nil, translateStoreErr(err)
	}

	if err := s.emit(ctx, audit.Event{
		PersonID: id,
		Action:   audit.ActionPersonRenamed,
		Actor:    requestcontext.Actor(ctx),
		Detail:   before.String() + " -> " + updated.PersonRecord.String(),
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit rename")
	}

	return &updated, nil
}

// Delete removes an entry from the directory.
func (s *PersonService) Delete(ctx context.Context, id domain.ID) error {
	if err := s.persons.Delete(ctx, id); err != nil {
		return translateStoreErr(err)
	}

	if err := s.emit(ctx, audit.Event{
		PersonID: id,
		Action:   audit.ActionPersonDeleted,
		Actor:    requestcontext.Actor(ctx),
	}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit deletion")
	}

	s.metrics.IncrementDeleted()
	return nil
}

// translateStoreErr turns store sentinels into coded domain errors.
func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "person not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "person was modified concurrently")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "directory store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "directory store failure")
	}
}
