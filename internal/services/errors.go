package services

import "errors"

// Shared service-level errors. The pure calculators return these directly;
// the storage-backed methods translate repository errors into them so
// handlers only ever map this small set.
var (
	// ErrValidation covers a required numeric field that is missing or
	// invalid. Gaps are never coerced to zero.
	ErrValidation = errors.New("validation error")

	// ErrNotFound covers a referenced identifier missing from the store or
	// from a supplied snapshot.
	ErrNotFound = errors.New("record not found")

	// ErrConflict covers duplicate keys and rejected state transitions,
	// such as delivering more than was ordered.
	ErrConflict = errors.New("conflict")
)
