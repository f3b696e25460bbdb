package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dataroomhq/dataroom/pkg/objectpath"
)

// S3Client defines the interface for S3 operations used by S3Storage.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
}

// S3Presigner issues presigned request URLs for private objects.
type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Storage implements Storage for Amazon S3 and S3-compatible services.
// Objects are written with server-side encryption enabled; visibility is
// private unless the store metadata says otherwise. It is safe for
// concurrent use.
type S3Storage struct {
	client    S3Client
	presigner S3Presigner
	bucket    string
	baseURL   string
}

// S3Config contains configuration for S3 storage. Credentials are optional:
// when absent, ambient identity (environment, instance profile) is used.
type S3Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // for S3-compatible services
	CDNDomain      string // when set, returned URLs use this host
	ForcePathStyle bool   // for S3-compatible services like MinIO
}

// S3Option defines a function that configures S3Storage.
type S3Option func(*s3Options)

type s3Options struct {
	s3Client  S3Client
	presigner S3Presigner
}

// WithS3Client sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithS3Presigner sets a custom presigner. Useful for testing; when unset
// and the client is a real *s3.Client, a presign client is derived from it.
func WithS3Presigner(p S3Presigner) S3Option {
	return func(o *s3Options) {
		o.presigner = p
	}
}

// NewS3Storage creates a new S3 storage instance.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		awsOptions := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}

		// Static credentials when provided, ambient identity otherwise.
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load AWS config: %v", ErrInvalidConfig, err)
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	presigner := options.presigner
	if presigner == nil {
		if realClient, ok := client.(*s3.Client); ok {
			presigner = s3.NewPresignClient(realClient)
		}
	}

	return &S3Storage{
		client:    client,
		presigner: presigner,
		bucket:    cfg.Bucket,
		baseURL:   s3BaseURL(cfg),
	}, nil
}

// s3BaseURL picks the public location scheme: CDN domain when configured,
// custom endpoint for S3-compatible services, or the native per-region URL.
func s3BaseURL(cfg S3Config) string {
	switch {
	case cfg.CDNDomain != "":
		domain := strings.TrimSuffix(cfg.CDNDomain, "/")
		if !strings.Contains(domain, "://") {
			domain = "https://" + domain
		}
		return domain + "/"
	case cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s/", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.Bucket, cfg.Region)
	}
}

// Store writes data at path with server-side encryption. The object is
// private unless meta.Public is set.
func (s *S3Storage) Store(ctx context.Context, data []byte, path string, meta Metadata) (*Result, error) {
	key, err := s.objectKey(path)
	if err != nil {
		return nil, err
	}

	input := &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
		Metadata:             meta.Attributes,
	}
	if meta.ContentType != "" {
		input.ContentType = aws.String(meta.ContentType)
	}
	if meta.Public {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return &Result{
		Backend: BackendObject,
		Path:    key,
		Bucket:  s.bucket,
		Key:     key,
		URL:     s.baseURL + key,
		Size:    int64(len(data)),
	}, nil
}

// Retrieve returns the object bytes.
func (s *S3Storage) Retrieve(ctx context.Context, path string) ([]byte, error) {
	key, err := s.objectKey(path)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	return data, nil
}

// Delete removes the object at path. S3 object deletion is idempotent, so a
// missing key is a success without a prior existence check.
func (s *S3Storage) Delete(ctx context.Context, path string) error {
	key, err := s.objectKey(path)
	if err != nil {
		return err
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil && !isNotFound(err) {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return nil
}

// Exists reports whether an object exists at path. A confirmed 404 is
// (false, nil); other failures, including authorization errors, propagate so
// an outage is not reported as a missing object.
func (s *S3Storage) Exists(ctx context.Context, path string) (bool, error) {
	key, err := s.objectKey(path)
	if err != nil {
		return false, err
	}

	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	return true, nil
}

// Stat returns object metadata from a HeadObject call.
func (s *S3Storage) Stat(ctx context.Context, path string) (*ObjectInfo, error) {
	key, err := s.objectKey(path)
	if err != nil {
		return nil, err
	}

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	return &ObjectInfo{
		Size:        aws.ToInt64(out.ContentLength),
		ModTime:     aws.ToTime(out.LastModified),
		ContentType: aws.ToString(out.ContentType),
		ETag:        strings.Trim(aws.ToString(out.ETag), `"`),
	}, nil
}

// SignedURL issues a presigned GET URL valid for expiresIn. Returns "" when
// no presigner is available.
func (s *S3Storage) SignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	if s.presigner == nil {
		return "", nil
	}

	key, err := s.objectKey(path)
	if err != nil {
		return "", err
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	return req.URL, nil
}

// DeleteBatch removes up to thousands of objects in chunks of 1000, the S3
// per-request limit. Missing keys are successes, matching Delete.
func (s *S3Storage) DeleteBatch(ctx context.Context, paths []string) error {
	objects := make([]types.ObjectIdentifier, 0, len(paths))
	for _, p := range paths {
		key, err := s.objectKey(p)
		if err != nil {
			return err
		}
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}

	for i := 0; i < len(objects); i += 1000 {
		end := min(i+1000, len(objects))
		if _, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{
				Objects: objects[i:end],
				Quiet:   aws.Bool(true),
			},
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}

	return nil
}

// Copy duplicates an object server-side without moving bytes through the
// caller. The copy inherits server-side encryption.
func (s *S3Storage) Copy(ctx context.Context, srcPath, dstPath string) error {
	srcKey, err := s.objectKey(srcPath)
	if err != nil {
		return err
	}
	dstKey, err := s.objectKey(dstPath)
	if err != nil {
		return err
	}

	if _, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:               aws.String(s.bucket),
		CopySource:           aws.String(url.PathEscape(s.bucket + "/" + srcKey)),
		Key:                  aws.String(dstKey),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	}); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, srcPath)
		}
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return nil
}

// objectKey normalizes a storage path into an S3 key, rejecting traversal
// constructs that have no business in an object key.
func (s *S3Storage) objectKey(path string) (string, error) {
	key := strings.TrimPrefix(path, "/")
	if key == "" || strings.Contains(key, "..") || strings.Contains(key, "~") || strings.ContainsRune(key, 0x00) {
		return "", fmt.Errorf("%w: %q", objectpath.ErrPathTraversal, path)
	}
	return key, nil
}

// isNotFound classifies backend errors that mean "object absent" as opposed
// to transport or authorization failures.
func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return true
	}

	// HeadObject reports absence as a bare 404 API error.
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey")
}
