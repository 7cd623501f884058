package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"persondir/internal/person/models"
	"persondir/pkg/domain"
	"persondir/pkg/platform/sentinel"
)

// Postgres persists directory entries in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed person store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, name domain.Name, surname domain.Surname, now time.Time) (*models.Person, error) {
	var rawID int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO persons (name, surname, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)
		 RETURNING id`,
		name.String(), surname.String(), now,
	).Scan(&rawID)
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	id, err := domain.NewID(rawID)
	if err != nil {
		// BIGSERIAL never yields a negative value; treat as corruption.
		return nil, fmt.Errorf("create person: store returned invalid id %d: %w", rawID, err)
	}

	return &models.Person{
		PersonRecord: domain.NewPersonRecord(id, name, surname),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.ID) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, surname, created_at, updated_at FROM persons WHERE id = $1`,
		id.Int64(),
	)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return p, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, surname, created_at, updated_at FROM persons ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var out []*models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("list persons: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return out, nil
}

func (s *Postgres) Update(ctx context.Context, p *models.Person) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE persons SET name = $2, surname = $3, updated_at = $4 WHERE id = $1`,
		p.ID.Int64(), p.Name.String(), p.Surname.String(), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id domain.ID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM persons WHERE id = $1`, id.Int64(),
	)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPerson rebuilds a Person from a row. Values already satisfied the
// wrapper invariants at write time (and the table CHECKs mirror them), so
// reads convert directly without re-parsing.
func scanPerson(sc scanner) (*models.Person, error) {
	var (
		rawID                int64
		rawName, rawSurname  string
		createdAt, updatedAt time.Time
	)
	if err := sc.Scan(&rawID, &rawName, &rawSurname, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &models.Person{
		PersonRecord: domain.NewPersonRecord(domain.ID(rawID), domain.Name(rawName), domain.Surname(rawSurname)),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}
