package storage

import "errors"

var (
	// ErrNotFound is returned when no object exists at the requested path
	ErrNotFound = errors.New("object not found")

	// ErrReadFailed is returned when the backend fails to read an object
	ErrReadFailed = errors.New("storage read failed")

	// ErrWriteFailed is returned when the backend fails to write or delete an object
	ErrWriteFailed = errors.New("storage write failed")

	// ErrInvalidConfig is returned when backend configuration is incomplete
	ErrInvalidConfig = errors.New("invalid storage configuration")

	// ErrUnsupportedBackend is returned by the factory for an unrecognized backend name
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)
