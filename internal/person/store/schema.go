package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the DDL for the persons table. The CHECK constraints mirror the
// construction invariants of the domain wrappers so data written by other
// tools cannot drift below them.
const Schema = `
CREATE TABLE IF NOT EXISTS persons (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL CHECK (name <> ''),
    surname    TEXT NOT NULL CHECK (surname <> '' AND char_length(surname) <= 20),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema applies the persons DDL. Idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply persons schema: %w", err)
	}
	return nil
}
