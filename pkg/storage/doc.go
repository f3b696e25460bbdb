// Package storage persists validated upload buffers behind a
// backend-agnostic interface.
//
// The package includes:
//   - A Storage interface implemented identically in semantics by every backend
//   - LocalStorage for a root-confined local directory tree
//   - S3Storage for AWS S3 and compatible services, with server-side
//     encryption, CDN URL rewriting, presigned URLs and bulk operations
//   - An environment-driven factory with single-construction caching
//
// Example usage:
//
//	store, err := storage.New(ctx, storage.Config{Backend: "local", LocalDir: "./uploads"})
//	if err != nil {
//		return err
//	}
//
//	res, err := store.Store(ctx, data, "3a/7f/3a7f...pdf", storage.Metadata{
//		ContentType: "application/pdf",
//	})
//	if err != nil {
//		return err
//	}
//	// res.URL / res.AbsolutePath locate the stored object
package storage
