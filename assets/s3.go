package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// GetObjectAPI is the subset of the S3 client S3Resolver uses.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Resolver reads assets from a bucket, under an optional key prefix.
type S3Resolver struct {
	Client GetObjectAPI
	Bucket string
	Prefix string
}

// Resolve downloads the object for name.
func (r S3Resolver) Resolve(ctx context.Context, name string) ([]byte, error) {
	key := strings.TrimLeft(name, "/")
	if prefix := strings.Trim(r.Prefix, "/"); prefix != "" {
		key = path.Join(prefix, key)
	}

	out, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, r.Bucket, key)
		}
		return nil, fmt.Errorf("fetching s3://%s/%s: %w", r.Bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", r.Bucket, key, err)
	}
	return data, nil
}
