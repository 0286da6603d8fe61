package domain

import "github.com/oklog/ulid/v2"

// ID uniquely identifies an account, group or ledger.
// Two IDs are equal iff their underlying values are equal.
type ID string

// NewID returns a fresh ULID-backed identifier.
func NewID() ID {
	return ID(ulid.Make().String())
}

func (id ID) String() string { return string(id) }
