package storage

import (
	"context"
	"time"
)

// Backend identifies a storage adapter implementation.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendObject Backend = "object"
)

// Metadata accompanies a stored object. Attributes always receive an upload
// timestamp; visibility defaults to private.
type Metadata struct {
	ContentType string
	Public      bool
	Attributes  map[string]string
}

// Result describes a successfully stored object. It is a transient value:
// the adapter keeps no reference after returning it, so persisting it is the
// caller's responsibility.
type Result struct {
	Backend      Backend
	Path         string // relative storage path, slash-separated
	AbsolutePath string // local backend only
	Bucket       string // object backend only
	Key          string // object backend only
	URL          string // externally resolvable location, when the backend has one
	Size         int64
}

// ObjectInfo carries object metadata returned by Stat.
type ObjectInfo struct {
	Size        int64
	ModTime     time.Time
	ContentType string
	ETag        string
}

// Storage is the uniform contract every backend implements. Implementations
// are safe for concurrent use with different paths; concurrent writes to the
// same path are backend-defined and not guaranteed atomic, so callers must
// not rely on write ordering for a single path.
type Storage interface {
	// Store writes data at path, creating any intermediate structure, and
	// associates the supplied metadata with the stored object. Fails with
	// ErrWriteFailed on backend failure.
	Store(ctx context.Context, data []byte, path string, meta Metadata) (*Result, error)

	// Retrieve returns the object bytes. Fails with ErrNotFound when no
	// object exists at path, ErrReadFailed on other backend failure.
	Retrieve(ctx context.Context, path string) ([]byte, error)

	// Delete removes the object at path. Deleting a non-existent path is a
	// success: the intended outcome is already satisfied.
	Delete(ctx context.Context, path string) error

	// Exists reports whether an object exists at path. Confirmed absence is
	// (false, nil); transport or authorization failures return the error so
	// outages are not masked as missing files.
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns object metadata, or ErrNotFound when absent.
	Stat(ctx context.Context, path string) (*ObjectInfo, error)

	// SignedURL returns a time-limited externally fetchable URL where the
	// backend supports it, and "" (with a nil error) where it does not.
	// Signed URLs are a capability, not a universal guarantee.
	SignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error)
}
