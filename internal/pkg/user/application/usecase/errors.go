package usecase

import "errors"

var (
	ErrValidation  = errors.New("user use case: invalid input")
	ErrNotFound    = errors.New("user use case: not found")
	ErrPersistence = errors.New("user use case: persistence error")
)
