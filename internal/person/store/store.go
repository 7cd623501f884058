// Package store persists directory entries. Implementations return sentinel
// errors for infrastructure facts; the service layer translates them into
// domain errors.
package store

import (
	"context"
	"time"

	"persondir/internal/person/models"
	"persondir/pkg/domain"
)

// Store is interface-driven to keep the service testable and to allow
// swapping in-memory, Postgres, or cached persistence without rewiring
// business code.
type Store interface {
	// Create assigns the next free ID, builds the record from the
	// already-valid wrappers, and persists it.
	Create(ctx context.Context, name domain.Name, surname domain.Surname, now time.Time) (*models.Person, error)

	// FindByID returns the entry or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id domain.ID) (*models.Person, error)

	// List returns all entries ordered by ID.
	List(ctx context.Context) ([]*models.Person, error)

	// Update replaces the stored record for p's ID.
	// Returns sentinel.ErrNotFound when the entry does not exist.
	Update(ctx context.Context, p *models.Person) error

	// Delete removes the entry or returns sentinel.ErrNotFound.
	Delete(ctx context.Context, id domain.ID) error
}
