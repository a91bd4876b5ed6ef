package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	pkglogger "github.com/cardinal-wishlist/wishlist-backend/pkg/logger"
)

// S3Client wraps the AWS S3 client for S3/R2/MinIO compatible storage
type S3Client struct {
	client   *s3.Client
	bucket   string
	cdnURL   string // optional CDN base URL
	basePath string // prefix for all objects (e.g. "uploads/")
}

// S3Config holds S3-compatible storage configuration
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	CDNURL          string
	BasePath        string
	ForcePathStyle  bool // true for MinIO/R2
}

// NewS3Client creates a new S3-compatible storage client
func NewS3Client(cfg S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	opts := func(o *s3.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}

	client := s3.New(s3.Options{}, opts)

	pkglogger.GetLogger().Info().
		Str("bucket", cfg.Bucket).
		Str("endpoint", cfg.Endpoint).
		Msg("S3 storage client initialized")

	return &S3Client{
		client:   client,
		bucket:   cfg.Bucket,
		cdnURL:   strings.TrimRight(cfg.CDNURL, "/"),
		basePath: cfg.BasePath,
	}, nil
}

// Put uploads an object and returns its public URL
func (c *S3Client) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	fullKey := c.basePath + key
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	return c.objectURL(fullKey), nil
}

// Delete removes the object behind a URL previously returned by Put.
// Returns false when the URL does not belong to this bucket or the delete fails.
func (c *S3Client) Delete(ctx context.Context, objectURL string) bool {
	key, ok := c.keyFromURL(objectURL)
	if !ok {
		return false
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}
	if _, err := c.client.DeleteObject(ctx, input); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("key", key).Msg("s3 delete failed")
		return false
	}
	return true
}

func (c *S3Client) objectURL(key string) string {
	if c.cdnURL != "" {
		return c.cdnURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key)
}

func (c *S3Client) keyFromURL(objectURL string) (string, bool) {
	for _, prefix := range []string{
		c.cdnURL + "/",
		fmt.Sprintf("https://%s.s3.amazonaws.com/", c.bucket),
	} {
		if prefix == "/" {
			continue
		}
		if key, found := strings.CutPrefix(objectURL, prefix); found && key != "" {
			return key, true
		}
	}
	return "", false
}

// GenerateKey creates a unique storage key under folder, keeping the file extension
func GenerateKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
