package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"persondir/internal/person/models"
	"persondir/pkg/domain"
	"persondir/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) create(name, surname string) *domain.PersonRecord {
	n, err := domain.ParseName(name)
	s.Require().NoError(err)
	sn, err := domain.ParseSurname(surname)
	s.Require().NoError(err)
	p, err := s.store.Create(s.ctx, n, sn, time.Now())
	s.Require().NoError(err)
	return &p.PersonRecord
}

// TestCreationAndLookups verifies the store assigns IDs and retrieves entries.
func (s *MemoryStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds person by ID", func() {
		rec := s.create("john", "doe")
		s.Equal(int64(1), rec.ID.Int64(), "first ID comes from the sequence")

		found, err := s.store.FindByID(s.ctx, rec.ID)
		s.Require().NoError(err)
		s.Equal(domain.Name("john"), found.Name)
		s.Equal(domain.Surname("doe"), found.Surname)
	})

	s.Run("assigns monotonically increasing IDs", func() {
		first := s.create("a", "b")
		second := s.create("c", "d")
		s.Equal(first.ID+1, second.ID)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, domain.ID(9999))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestList verifies ordering by ID.
func (s *MemoryStoreSuite) TestList() {
	s.create("john", "doe")
	s.create("jane", "smith")
	s.create("jim", "beam")

	persons, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(persons, 3)
	for i := 1; i < len(persons); i++ {
		s.Less(persons[i-1].ID, persons[i].ID)
	}
}

// TestUpdates verifies record replacement and missing-entry handling.
func (s *MemoryStoreSuite) TestUpdates() {
	s.Run("persists a replaced record", func() {
		rec := s.create("john", "doe")
		found, err := s.store.FindByID(s.ctx, rec.ID)
		s.Require().NoError(err)

		renamed, err := domain.ParseName("jane")
		s.Require().NoError(err)
		updated := found.WithRecord(found.WithName(renamed), time.Now())

		s.Require().NoError(s.store.Update(s.ctx, &updated))

		after, err := s.store.FindByID(s.ctx, rec.ID)
		s.Require().NoError(err)
		s.Equal(domain.Name("jane"), after.Name)
		s.Equal(domain.Surname("doe"), after.Surname)
	})

	s.Run("returns ErrNotFound for non-existent person", func() {
		rec := s.create("ghost", "entry")
		s.Require().NoError(s.store.Delete(s.ctx, rec.ID))

		gone := models.Person{PersonRecord: *rec, UpdatedAt: time.Now()}
		err := s.store.Update(s.ctx, &gone)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestDelete verifies removal semantics.
func (s *MemoryStoreSuite) TestDelete() {
	s.Run("removes an existing person", func() {
		rec := s.create("john", "doe")
		s.Require().NoError(s.store.Delete(s.ctx, rec.ID))

		_, err := s.store.FindByID(s.ctx, rec.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		err := s.store.Delete(s.ctx, domain.ID(424242))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("deleted IDs are not reused", func() {
		first := s.create("a", "b")
		s.Require().NoError(s.store.Delete(s.ctx, first.ID))
		second := s.create("c", "d")
		s.Greater(second.ID, first.ID)
	})
}
