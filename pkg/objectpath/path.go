package objectpath

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// StoragePath derives the sharded content-addressed location for a digest:
// {digest[0:2]}/{digest[2:4]}/{digest}{ext}. The 4-character sharding prefix
// bounds per-directory fan-out. When baseDir is non-empty the returned path
// is joined under it; otherwise the path is relative.
//
// The sharded layout is part of the durable on-disk contract and must not
// change without a migration.
func StoragePath(digest, ext, baseDir string) (string, error) {
	if len(digest) < 4 {
		return "", fmt.Errorf("%w: %q", ErrShortDigest, digest)
	}

	rel := path.Join(digest[0:2], digest[2:4], digest+ext)
	if baseDir == "" {
		return rel, nil
	}
	return filepath.Join(baseDir, filepath.FromSlash(rel)), nil
}

// Resolve validates a candidate path against a base directory and returns
// its absolute form. It fails with ErrPathTraversal when the raw candidate
// contains a null byte, a ".." segment or a home-directory shorthand, even
// if resolution would otherwise appear contained — naive resolve-then-compare
// checks can miss those on some platforms. It then resolves both paths to
// absolute form and requires the candidate to sit inside the base.
func Resolve(baseDir, candidate string) (string, error) {
	if strings.ContainsRune(candidate, 0x00) || strings.Contains(candidate, "~") {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, candidate)
	}
	for _, segment := range strings.Split(filepath.ToSlash(candidate), "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrPathTraversal, candidate)
		}
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	joined := candidate
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(absBase, filepath.FromSlash(candidate))
	}

	absPath, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, candidate)
	}

	return absPath, nil
}
