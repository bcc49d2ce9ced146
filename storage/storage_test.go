package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	got, err := store.Save(context.Background(), "decks/out.pptx", []byte("deck"), "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	want := filepath.Join(dir, "decks", "out.pptx")
	if got != want {
		t.Errorf("Expected path %s, got %s", want, got)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "deck" {
		t.Errorf("Expected content %q, got %q", "deck", data)
	}

	// No temp files are left behind.
	entries, _ := os.ReadDir(filepath.Join(dir, "decks"))
	if len(entries) != 1 {
		t.Errorf("Expected 1 file in output dir, got %d", len(entries))
	}
}

func TestLocalStore_Overwrite(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	if _, err := store.Save(ctx, "a.pptx", []byte("first"), ""); err != nil {
		t.Fatal(err)
	}
	path, err := store.Save(ctx, "a.pptx", []byte("second"), "")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("Expected overwritten content, got %q", data)
	}
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	for _, key := range []string{"..", "../x.pptx", "a/../../x.pptx", ""} {
		if _, err := store.Save(context.Background(), key, []byte("x"), ""); err == nil {
			t.Errorf("Expected error for key %q", key)
		}
	}
}

func TestLocalStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	if _, err := NewLocalStore(dir).Save(ctx, "a.pptx", []byte("x"), ""); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.pptx")); !os.IsNotExist(err) {
		t.Error("Expected no file after canceled save")
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.pptx")
	if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Fatal("Expected error when directory does not exist")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no output file")
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Save(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3StoreWithClient(fake, S3Options{Bucket: "decks", Prefix: "/generated/"})

	url, err := store.Save(context.Background(), "abc.pptx", []byte("deck"), "application/test")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "s3://decks/generated/abc.pptx" {
		t.Errorf("Unexpected url: %s", url)
	}
	if aws.ToString(fake.input.Bucket) != "decks" {
		t.Errorf("Unexpected bucket: %s", aws.ToString(fake.input.Bucket))
	}
	if aws.ToString(fake.input.Key) != "generated/abc.pptx" {
		t.Errorf("Unexpected key: %s", aws.ToString(fake.input.Key))
	}
	if aws.ToString(fake.input.ContentType) != "application/test" {
		t.Errorf("Unexpected content type: %s", aws.ToString(fake.input.ContentType))
	}
	if aws.ToInt64(fake.input.ContentLength) != 4 || string(fake.body) != "deck" {
		t.Errorf("Unexpected body: %q", fake.body)
	}
}

func TestS3Store_SaveError(t *testing.T) {
	boom := errors.New("boom")
	store := NewS3StoreWithClient(&fakeS3{err: boom}, S3Options{Bucket: "decks"})
	if _, err := store.Save(context.Background(), "a.pptx", nil, ""); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	if _, err := NewS3Store(S3Options{Region: "us-east-1"}); !errors.Is(err, ErrNoBucket) {
		t.Errorf("Expected ErrNoBucket, got %v", err)
	}
	store, err := NewS3Store(S3Options{Bucket: "b", Endpoint: "http://localhost:9000", PathStyle: true})
	if err != nil {
		t.Fatalf("NewS3Store failed: %v", err)
	}
	if store.Key("x.pptx") != "x.pptx" {
		t.Errorf("Unexpected key: %s", store.Key("x.pptx"))
	}
}
