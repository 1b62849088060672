package storage

import "errors"

var (
	ErrValidation = errors.New("validation error")

	// ErrNotFound also covers ownership mismatch: a row owned by another
	// account must be indistinguishable from a missing row.
	ErrNotFound = errors.New("resource not found")

	ErrDuplicate = errors.New("duplicate entry")
)
