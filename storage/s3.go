package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNoBucket is returned by NewS3Store when no bucket is configured.
var ErrNoBucket = errors.New("s3 bucket not configured")

// S3Options configures an S3-compatible bucket.
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string // Custom endpoint for MinIO, R2 and similar
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string // Key prefix, without trailing slash
	PathStyle       bool
}

// PutObjectAPI is the subset of the S3 client S3Store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads decks to a bucket.
type S3Store struct {
	client PutObjectAPI
	opts   S3Options
}

// NewS3Store builds an S3 client from opts. Without an access key the
// client sends anonymous requests.
func NewS3Store(opts S3Options) (*S3Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, ErrNoBucket
	}
	return NewS3StoreWithClient(NewS3Client(opts), opts), nil
}

// NewS3StoreWithClient uses an existing client.
func NewS3StoreWithClient(client PutObjectAPI, opts S3Options) *S3Store {
	opts.Prefix = strings.Trim(strings.TrimSpace(opts.Prefix), "/")
	return &S3Store{client: client, opts: opts}
}

// NewS3Client returns an S3 client configured from opts.
func NewS3Client(opts S3Options) *s3.Client {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	cfg := aws.Config{Region: region}
	if opts.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")
	} else {
		cfg.Credentials = aws.AnonymousCredentials{}
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	})
}

// Key returns the object key used for name.
func (s *S3Store) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if s.opts.Prefix == "" {
		return name
	}
	return path.Join(s.opts.Prefix, name)
}

// Save uploads data and returns an s3:// URL for the object.
func (s *S3Store) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	objectKey := s.Key(key)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("uploading %s: %w", objectKey, err)
	}
	return "s3://" + s.opts.Bucket + "/" + objectKey, nil
}
