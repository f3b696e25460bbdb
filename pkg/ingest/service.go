package ingest

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/dataroomhq/dataroom/pkg/filetype"
	"github.com/dataroomhq/dataroom/pkg/logger"
	"github.com/dataroomhq/dataroom/pkg/objectpath"
	"github.com/dataroomhq/dataroom/pkg/storage"
)

// ErrEmptyUpload is returned when the request carries no content
var ErrEmptyUpload = errors.New("upload buffer is empty")

// Request is an immutable upload: content bytes plus the client's claims
// about them. It is never mutated once validation begins.
type Request struct {
	Data         []byte
	Filename     string
	DeclaredMIME string
	Public       bool
	Metadata     map[string]string
}

// Result describes a completed ingestion. The service holds no reference
// after return; recording it is the persistence layer's job.
type Result struct {
	UploadID   string
	Digest     string
	Path       string
	Validation *filetype.Result
	Stored     *storage.Result
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger used for ingestion events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// Service validates and stores uploads. One instance serves the whole
// process; it holds no per-request state.
type Service struct {
	store storage.Storage
	log   *slog.Logger
}

// NewService creates an ingestion service over the given storage backend.
func NewService(store storage.Storage, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest validates the upload, derives its content-addressed location and
// persists it. Validation rejections are deterministic and returned without
// touching storage; backend failures surface as-is, with no retry at this
// layer.
func (s *Service) Ingest(ctx context.Context, req Request) (*Result, error) {
	if len(req.Data) == 0 {
		return nil, ErrEmptyUpload
	}

	validation, err := filetype.Validate(req.Data, req.Filename, req.DeclaredMIME)
	if err != nil {
		s.log.InfoContext(ctx, "upload rejected",
			slog.String("filename", req.Filename),
			slog.String("declared_mime", req.DeclaredMIME),
			logger.Error(err),
		)
		return nil, err
	}

	safeName, err := objectpath.SanitizeFilename(req.Filename)
	if err != nil {
		return nil, err
	}

	digest := objectpath.Digest(req.Data)
	path, err := objectpath.StoragePath(digest, validation.Extension, "")
	if err != nil {
		return nil, err
	}

	uploadID := uuid.NewString()

	attrs := make(map[string]string, len(req.Metadata)+3)
	maps.Copy(attrs, req.Metadata)
	attrs["upload-id"] = uploadID
	attrs["uploaded-at"] = time.Now().UTC().Format(time.RFC3339)
	attrs["original-filename"] = safeName

	stored, err := s.store.Store(ctx, req.Data, path, storage.Metadata{
		ContentType: validation.MIME,
		Public:      req.Public,
		Attributes:  attrs,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "upload store failed",
			slog.String("path", path),
			logger.Error(err),
		)
		return nil, err
	}

	s.log.InfoContext(ctx, "upload stored",
		slog.String("upload_id", uploadID),
		slog.String("path", path),
		slog.String("mime", validation.MIME),
		slog.String("category", string(validation.Category)),
		slog.Int64("size", stored.Size),
	)

	return &Result{
		UploadID:   uploadID,
		Digest:     digest,
		Path:       path,
		Validation: validation,
		Stored:     stored,
	}, nil
}

// Retrieve returns the stored bytes for a path. Used by the preview
// component for thumbnailing.
func (s *Service) Retrieve(ctx context.Context, path string) ([]byte, error) {
	return s.store.Retrieve(ctx, path)
}

// Delete removes the object at path; deleting an absent path succeeds.
func (s *Service) Delete(ctx context.Context, path string) error {
	if err := s.store.Delete(ctx, path); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "upload deleted", slog.String("path", path))
	return nil
}
