package usecase

import "errors"

// Sentinel errors mapped to HTTP status classes at the presentation layer.
var (
	// ErrValidation marks a missing/invalid required field (400).
	ErrValidation = errors.New("chat use case: invalid input")
	// ErrNotFound marks a referenced conversation that does not exist (404).
	ErrNotFound = errors.New("chat use case: not found")
	// ErrPersistence marks an infrastructure/repository failure (500).
	ErrPersistence = errors.New("chat use case: persistence error")
)
