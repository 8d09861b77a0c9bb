package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict with current state")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrExtractionFormat = errors.New("extraction payload is not a usable invoice")
	ErrModelUnavailable = errors.New("model service unavailable")
)
