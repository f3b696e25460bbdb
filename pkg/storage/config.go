package storage

// Config selects and configures the active storage backend. It is resolved
// once from the environment at adapter construction.
type Config struct {
	// Backend selects the adapter: "local" or "object".
	Backend string `env:"STORAGE_TYPE" envDefault:"local"`

	// LocalDir is the root directory for the local backend.
	LocalDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`

	// Object backend settings. Credentials are optional; when absent the
	// adapter falls back to ambient identity.
	Bucket         string `env:"AWS_S3_BUCKET"`
	Region         string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey      string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint       string `env:"AWS_S3_ENDPOINT"`
	ForcePathStyle bool   `env:"AWS_S3_FORCE_PATH_STYLE" envDefault:"false"`

	// CDNDomain, when set, rewrites returned object URLs to this host.
	CDNDomain string `env:"CDN_DOMAIN"`
}
