// internal/app/system/blobstore/s3.go
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 stores blobs in an S3 (or S3-compatible) bucket.
type S3 struct {
	client    *s3.Client
	bucket    string
	prefix    string
	publicURL string
}

// S3Options configures an S3 store. Endpoint and the static key pair are
// optional: leave them empty to use the default AWS credential chain, set
// them to point at an S3-compatible service (MinIO, Supabase storage, R2).
type S3Options struct {
	Region    string
	Bucket    string
	Prefix    string // key prefix inside the bucket, e.g. "course-assets/"
	PublicURL string // base URL objects are served from
	Endpoint  string // custom endpoint for S3-compatible backends
	AccessKey string
	SecretKey string
}

// NewS3 builds an S3 store from options.
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket name is required")
	}
	if opts.PublicURL == "" {
		return nil, errors.New("s3 public URL is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		client:    client,
		bucket:    opts.Bucket,
		prefix:    strings.TrimLeft(opts.Prefix, "/"),
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}, nil
}

func (s *S3) key(path string) string {
	return s.prefix + strings.TrimLeft(path, "/")
}

func (s *S3) Put(ctx context.Context, path string, r io.Reader, contentType string) error {
	// PutObject replaces any existing object at the key, which is exactly
	// the overwrite-on-re-sync behavior the pipeline needs.
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(path)),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", path, err)
	}
	return nil
}

func (s *S3) PublicURL(path string) string {
	return s.publicURL + "/" + s.key(path)
}

func (s *S3) BucketExists(ctx context.Context) (bool, error) {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("head bucket %q: %w", s.bucket, err)
	}
	return true, nil
}
