package objectstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Compile-time check to ensure S3Store implements Store
var _ Store = (*S3Store)(nil)

// S3Store stores proof screenshots in an S3 bucket under screenshots/.
type S3Store struct {
	client    *s3.Client
	bucket    string
	urlPrefix string
}

// S3Options configures an S3Store.
type S3Options struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// BaseEndpoint overrides the endpoint for S3-compatible stores (MinIO).
	BaseEndpoint string
}

// NewS3Store builds the SDK client from static credentials.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
	})

	return &S3Store{
		client:    client,
		bucket:    opts.Bucket,
		urlPrefix: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", opts.Bucket, opts.Region),
	}, nil
}

// Put uploads the body and returns the object's public URL.
func (s *S3Store) Put(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("screenshots/screenshot-%s%s", uuid.New(), filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("objectstore: put %s: %w", key, err)
	}

	return s.urlPrefix + key, nil
}

// Delete removes the object a previously returned URL points at. Foreign URLs
// are ignored.
func (s *S3Store) Delete(ctx context.Context, objectURL string) error {
	if !s.Owns(objectURL) {
		return nil
	}
	key := strings.TrimPrefix(objectURL, s.urlPrefix)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("objectstore: delete %s: %w", key, err)
	}
	return nil
}

// Owns reports whether the URL matches this bucket's public prefix.
func (s *S3Store) Owns(objectURL string) bool {
	return objectURL != "" && strings.HasPrefix(objectURL, s.urlPrefix)
}
