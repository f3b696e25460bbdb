// Package ingest runs the full upload pipeline: content validation, digest
// derivation, storage-path generation and persistence through the configured
// storage backend.
//
// Example usage:
//
//	store, err := storage.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	svc := ingest.NewService(store)
//
//	result, err := svc.Ingest(ctx, ingest.Request{
//		Data:         fileBytes,
//		Filename:     "report.pdf",
//		DeclaredMIME: "application/pdf",
//	})
//	if err != nil {
//		return err // validation rejections map to 4xx responses
//	}
//	// result.Digest, result.Path and result.Validation.Category are what
//	// the persistence layer records against the file.
package ingest
