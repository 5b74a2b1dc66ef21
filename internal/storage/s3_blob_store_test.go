package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	put    *s3.PutObjectInput
	putErr error
	getOut *s3.GetObjectOutput
	getErr error
	delKey string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeS3) GetObject(_ context.Context, _ *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return f.getOut, f.getErr
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.delKey = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3BlobStorePut(t *testing.T) {
	api := &fakeS3{}
	store := NewS3BlobStore(api, "bucket")
	expires := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	err := store.Put(context.Background(), "id-0", strings.NewReader("jpg"), 3, BlobMeta{
		ContentType: "image/jpeg",
		Expires:     expires,
		Metadata:    map[string]string{"sighting_id": "id"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	in := api.put
	if aws.ToString(in.Bucket) != "bucket" || aws.ToString(in.Key) != "id-0" {
		t.Fatalf("bucket/key = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != "image/jpeg" || aws.ToInt64(in.ContentLength) != 3 {
		t.Fatalf("content type/length = %s/%d", aws.ToString(in.ContentType), aws.ToInt64(in.ContentLength))
	}
	if in.Expires == nil || !in.Expires.Equal(expires) {
		t.Fatalf("expires = %v, want %v", in.Expires, expires)
	}
	if in.Metadata["sighting_id"] != "id" {
		t.Fatalf("metadata = %v", in.Metadata)
	}
}

func TestS3BlobStorePutError(t *testing.T) {
	store := NewS3BlobStore(&fakeS3{putErr: errors.New("boom")}, "bucket")
	if err := store.Put(context.Background(), "k", strings.NewReader(""), 0, BlobMeta{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestS3BlobStoreGet(t *testing.T) {
	api := &fakeS3{getOut: &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader("png")),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(3),
	}}
	store := NewS3BlobStore(api, "bucket")

	blob, err := store.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer blob.Body.Close()
	data, _ := io.ReadAll(blob.Body)
	if string(data) != "png" || blob.ContentType != "image/png" || blob.Size != 3 {
		t.Fatalf("blob = %q %s %d", data, blob.ContentType, blob.Size)
	}
}

func TestS3BlobStoreGetMissing(t *testing.T) {
	for _, apiErr := range []error{&types.NoSuchKey{}, &types.NotFound{}} {
		store := NewS3BlobStore(&fakeS3{getErr: apiErr}, "bucket")
		if _, err := store.Get(context.Background(), "k"); !errors.Is(err, ErrBlobNotFound) {
			t.Fatalf("err = %v, want ErrBlobNotFound", err)
		}
	}

	store := NewS3BlobStore(&fakeS3{getErr: errors.New("network")}, "bucket")
	if _, err := store.Get(context.Background(), "k"); err == nil || errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("err = %v, want a non-not-found error", err)
	}
}

func TestS3BlobStoreDelete(t *testing.T) {
	api := &fakeS3{}
	store := NewS3BlobStore(api, "bucket")
	if err := store.Delete(context.Background(), "id-0"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if api.delKey != "id-0" {
		t.Fatalf("deleted key = %q", api.delKey)
	}
}
