package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Infrastructure errors
	ErrStorageUnavailable = errors.New("file storage is not configured")
)
