package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks caller input that was rejected before reaching a store.
	ErrValidation = errors.New("validation failed")
)
