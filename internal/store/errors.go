package store

import "errors"

var (
	// ErrUnresolvedRef is returned when an author/category slug referenced
	// by a record does not resolve to an existing row. The file's
	// transaction is rolled back and the run continues.
	ErrUnresolvedRef = errors.New("store: unresolved reference")

	// ErrSlugConflict is returned when a second source file produces a slug
	// already owned by a different file. The existing row is never
	// overwritten.
	ErrSlugConflict = errors.New("store: slug conflict")

	// ErrNotFound is returned by lookups with no matching row.
	ErrNotFound = errors.New("store: not found")
)
