package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestDirResolver(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := DirResolver{Root: dir}
	ctx := context.Background()

	data, err := r.Resolve(ctx, "logo.png")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("Unexpected data: %q", data)
	}

	// Absolute names bypass Root.
	data, err = DirResolver{Root: "/nonexistent"}.Resolve(ctx, filepath.Join(dir, "logo.png"))
	if err != nil || string(data) != "png" {
		t.Errorf("Expected absolute path to resolve, got %q, %v", data, err)
	}

	for _, name := range []string{"missing.png", "", "   "} {
		if _, err := r.Resolve(ctx, name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestMapResolver(t *testing.T) {
	r := MapResolver{"table.png": []byte("t")}
	if data, err := r.Resolve(context.Background(), "table.png"); err != nil || string(data) != "t" {
		t.Errorf("Unexpected result: %q, %v", data, err)
	}
	if _, err := r.Resolve(context.Background(), "code.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

type failingResolver struct{ err error }

func (f failingResolver) Resolve(context.Context, string) ([]byte, error) { return nil, f.err }

func TestChain(t *testing.T) {
	ctx := context.Background()
	c := Chain{MapResolver{}, nil, MapResolver{"a": []byte("second")}}
	if data, err := c.Resolve(ctx, "a"); err != nil || string(data) != "second" {
		t.Errorf("Expected fallthrough to second resolver, got %q, %v", data, err)
	}
	if _, err := c.Resolve(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	boom := errors.New("permission denied")
	c = Chain{failingResolver{boom}, MapResolver{"a": []byte("x")}}
	if _, err := c.Resolve(ctx, "a"); !errors.Is(err, boom) {
		t.Errorf("Expected hard error to stop the chain, got %v", err)
	}
}

type fakeS3 struct {
	objects map[string][]byte
	err     error
	lastKey string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[f.lastKey]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Resolver(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"brand/logo.png": []byte("logo")}}
	r := S3Resolver{Client: fake, Bucket: "assets", Prefix: "brand/"}
	ctx := context.Background()

	data, err := r.Resolve(ctx, "logo.png")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(data) != "logo" {
		t.Errorf("Unexpected data: %q", data)
	}

	if _, err := r.Resolve(ctx, "icon.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if fake.lastKey != "brand/icon.png" {
		t.Errorf("Unexpected key: %s", fake.lastKey)
	}

	boom := errors.New("network down")
	r.Client = &fakeS3{err: boom}
	if _, err := r.Resolve(ctx, "logo.png"); !errors.Is(err, boom) || errors.Is(err, ErrNotFound) {
		t.Errorf("Expected wrapped network error, got %v", err)
	}
}
