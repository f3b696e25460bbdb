package objectpath

import "errors"

var (
	// ErrInvalidFilename is returned when the input is empty or not a usable filename
	ErrInvalidFilename = errors.New("invalid filename")

	// ErrPathTraversal is returned when a candidate path escapes, or attempts to escape, the base directory
	ErrPathTraversal = errors.New("path traversal attempt")

	// ErrShortDigest is returned when a digest is too short to derive a sharded path
	ErrShortDigest = errors.New("digest too short for sharded path")

	// ErrFailedToGetAbsolutePath is returned when a path cannot be resolved to absolute form
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")
)
