package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound covers both "does not exist" and "not visible to you".
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrStoreFailure = errors.New("store failure")
)
