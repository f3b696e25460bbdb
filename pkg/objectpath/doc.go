// Package objectpath derives and guards storage locations for uploaded files.
//
// The package includes:
//   - Filename sanitization for untrusted user-supplied names
//   - SHA-256 content digests used for addressing and deduplication
//   - Sharded content-addressed path generation ({ab}/{cd}/{digest}{ext})
//   - Traversal-safe resolution of candidate paths against a base directory
//
// Example usage:
//
//	digest := objectpath.Digest(data) // 64-char lowercase hex
//
//	rel, err := objectpath.StoragePath(digest, ".pdf", "")
//	if err != nil {
//		return err
//	}
//	// rel == "3a/7f/3a7f...{pdf}"
//
//	abs, err := objectpath.Resolve("/var/uploads", rel)
//	if err != nil {
//		return err // traversal attempt
//	}
package objectpath
