// Package domain holds the validated value types of the person directory.
//
// Every type here wraps exactly one primitive and enforces its invariant at
// construction. Construct via the Parse*/New* functions at trust boundaries;
// direct conversion bypasses validation. Once constructed, a value cannot be
// mutated, so an invariant cannot be violated after the constructor returns.
package domain

import (
	"strconv"
	"unicode/utf8"

	dErrors "persondir/pkg/domain-errors"
)

// SurnameMaxLen bounds surname length in runes, not bytes, so accented and
// non-Latin surnames are measured the way the user perceives them.
const SurnameMaxLen = 20

// Name is a person's given name.
// Invariant: non-empty.
type Name string

// ParseName constructs a Name from external input.
//
// Errors: CodeValidation when s is empty; no other errors are expected.
func ParseName(s string) (Name, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	return Name(s), nil
}

// String returns the wrapped name.
func (n Name) String() string {
	return string(n)
}

// Surname is a person's family name.
// Invariant: non-empty and at most SurnameMaxLen runes.
type Surname string

// ParseSurname constructs a Surname from external input.
//
// Errors: CodeValidation when s is empty or longer than SurnameMaxLen runes.
func ParseSurname(s string) (Surname, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "surname cannot be empty")
	}
	if utf8.RuneCountInString(s) > SurnameMaxLen {
		return "", dErrors.Newf(dErrors.CodeValidation, "surname must be %d characters or less", SurnameMaxLen)
	}
	return Surname(s), nil
}

// String returns the wrapped surname.
func (s Surname) String() string {
	return string(s)
}

// ID identifies a person in the directory.
// Invariant: non-negative.
type ID int64

// NewID constructs an ID from an integer.
//
// Errors: CodeValidation when v is negative.
func NewID(v int64) (ID, error) {
	if v < 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "id cannot be negative")
	}
	return ID(v), nil
}

// ParseID constructs an ID from external string input, e.g. a URL parameter.
//
// Errors: CodeInvalidInput when s is not an integer, CodeValidation when the
// integer is negative.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "id must be an integer")
	}
	return NewID(v)
}

// Int64 returns the wrapped integer.
func (id ID) Int64() int64 {
	return int64(id)
}

// String returns the decimal representation of the id.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// PersonRecord aggregates the validated parts of a directory entry.
//
// Construction always succeeds: the parts were validated by their own
// constructors, so the aggregate needs no re-validation. Validity of the
// whole is compositional. The record is a value; updates produce a new
// record rather than mutating in place.
type PersonRecord struct {
	ID      ID
	Name    Name
	Surname Surname
}

// NewPersonRecord builds a record from already-valid parts.
func NewPersonRecord(id ID, name Name, surname Surname) PersonRecord {
	return PersonRecord{ID: id, Name: name, Surname: surname}
}

// WithName returns a copy of the record carrying the new name.
func (p PersonRecord) WithName(name Name) PersonRecord {
	p.Name = name
	return p
}

// WithSurname returns a copy of the record carrying the new surname.
func (p PersonRecord) WithSurname(surname Surname) PersonRecord {
	p.Surname = surname
	return p
}

// String returns a stable textual representation for logs.
func (p PersonRecord) String() string {
	return p.ID.String() + ":" + string(p.Name) + " " + string(p.Surname)
}
