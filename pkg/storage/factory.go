package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/dataroomhq/dataroom/pkg/config"
)

// New constructs the adapter named by cfg.Backend. An empty name defaults to
// the local backend; any other unrecognized name fails with
// ErrUnsupportedBackend.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch Backend(cfg.Backend) {
	case BackendLocal, "":
		return NewLocalStorage(cfg.LocalDir)
	case BackendObject:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.Bucket,
			Region:         cfg.Region,
			AccessKeyID:    cfg.AccessKeyID,
			SecretKey:      cfg.SecretKey,
			Endpoint:       cfg.Endpoint,
			CDNDomain:      cfg.CDNDomain,
			ForcePathStyle: cfg.ForcePathStyle,
		}, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}

// Factory constructs the configured adapter at most once and hands out the
// shared instance. Adapters hold only immutable configuration, so a single
// instance serves the whole process.
type Factory struct {
	cfg  Config
	opts []S3Option

	once    sync.Once
	storage Storage
	err     error
}

// NewFactory creates a factory for the given configuration. Construction is
// deferred until the first Get call.
func NewFactory(cfg Config, opts ...S3Option) *Factory {
	return &Factory{cfg: cfg, opts: opts}
}

// NewFactoryFromEnv creates a factory whose configuration is loaded from the
// environment.
func NewFactoryFromEnv(opts ...S3Option) (*Factory, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewFactory(cfg, opts...), nil
}

// Get returns the process-wide adapter, constructing it on first access.
// Construction happens at most once regardless of concurrent callers; a
// construction failure is sticky and returned to every caller.
func (f *Factory) Get(ctx context.Context) (Storage, error) {
	f.once.Do(func() {
		f.storage, f.err = New(ctx, f.cfg, f.opts...)
	})
	return f.storage, f.err
}
