package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobMeta is stored alongside the bytes of an attachment.
type BlobMeta struct {
	ContentType string
	// Expires is the latest instant the blob may be served. Zero means no expiry.
	Expires  time.Time
	Metadata map[string]string
}

// Blob is an open attachment. Callers must close Body.
type Blob struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// BlobStore is keyed binary storage. Delete of a missing key succeeds.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, meta BlobMeta) error
	// Get returns ErrBlobNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (*Blob, error)
	Delete(ctx context.Context, key string) error
}
