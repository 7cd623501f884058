package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"persondir/internal/person/models"
	"persondir/pkg/domain"
	"persondir/pkg/platform/sentinel"
)

// InMemory keeps the directory in a mutex-guarded map. It intentionally
// favors clarity over performance; production deployments use Postgres.
type InMemory struct {
	mu      sync.RWMutex
	persons map[domain.ID]models.Person
	nextID  int64
}

// NewInMemory creates an empty in-memory store. IDs are assigned from 1
// upward, matching the Postgres BIGSERIAL behavior.
func NewInMemory() *InMemory {
	return &InMemory{
		persons: make(map[domain.ID]models.Person),
		nextID:  1,
	}
}

func (s *InMemory) Create(_ context.Context, name domain.Name, surname domain.Surname, now time.Time) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := domain.NewID(s.nextID)
	if err != nil {
		return nil, err
	}
	s.nextID++

	p := models.Person{
		PersonRecord: domain.NewPersonRecord(id, name, surname),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.persons[id] = p
	return &p, nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.ID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.persons[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Person, 0, len(s.persons))
	for _, p := range s.persons {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Update(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.persons[p.ID] = *p
	return nil
}

func (s *InMemory) Delete(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.persons, id)
	return nil
}
