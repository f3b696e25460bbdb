package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/dataroomhq/dataroom/pkg/objectpath"
)

// LocalStorage implements Storage against a local directory tree.
// All operations are confined to the configured root directory.
// It is safe for concurrent use.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a local backend rooted at baseDir, creating the
// directory if needed.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: local base directory is required", ErrInvalidConfig)
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrInvalidConfig, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return &LocalStorage{baseDir: absBaseDir}, nil
}

// Store writes data under the root directory. Files are written with
// non-executable 0644 permissions; intermediate directories are created as
// needed. The supplied metadata attributes are not persisted separately on
// this backend; the file's modification time serves as the upload timestamp.
func (s *LocalStorage) Store(ctx context.Context, data []byte, path string, meta Metadata) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	absPath, err := objectpath.Resolve(s.baseDir, path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return &Result{
		Backend:      BackendLocal,
		Path:         filepath.ToSlash(path),
		AbsolutePath: absPath,
		Size:         int64(len(data)),
	}, nil
}

// Retrieve reads the object bytes from disk.
func (s *LocalStorage) Retrieve(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	absPath, err := objectpath.Resolve(s.baseDir, path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	return data, nil
}

// Delete removes the file at path. A missing file is a success.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := objectpath.Resolve(s.baseDir, path)
	if err != nil {
		return err
	}

	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return nil
}

// Exists reports whether a file exists at path via a direct filesystem check.
func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	absPath, err := objectpath.Resolve(s.baseDir, path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	return true, nil
}

// Stat returns file metadata. The content type is inferred from the
// extension since the local backend stores no object metadata of its own.
func (s *LocalStorage) Stat(ctx context.Context, path string) (*ObjectInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	absPath, err := objectpath.Resolve(s.baseDir, path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	return &ObjectInfo{
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: mime.TypeByExtension(filepath.Ext(absPath)),
	}, nil
}

// SignedURL is unsupported on the local backend; it returns "" without error.
func (s *LocalStorage) SignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	return "", nil
}
