// Package models holds the person entity persisted by the directory.
package models

import (
	"time"

	"persondir/pkg/domain"
)

// Person is a directory entry: the validated record plus bookkeeping
// timestamps owned by the store.
//
// Invariants are carried entirely by the embedded record - a Person can only
// be built from wrappers that already passed their constructors, so nothing
// here re-validates. Updates swap in a new record value; fields are never
// mutated in place.
type Person struct {
	domain.PersonRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithRecord returns a copy of the person carrying a new record and
// updated timestamp.
func (p Person) WithRecord(rec domain.PersonRecord, now time.Time) Person {
	p.PersonRecord = rec
	p.UpdatedAt = now
	return p
}
