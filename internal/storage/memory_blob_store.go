package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

type memoryBlob struct {
	data []byte
	meta BlobMeta
}

// MemoryBlobStore is a process-local BlobStore. Expired blobs are treated
// as absent and dropped on the next read.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
	now   func() time.Time
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string]memoryBlob), now: time.Now}
}

// WithClock replaces the clock used for expiry checks.
func (m *MemoryBlobStore) WithClock(now func() time.Time) *MemoryBlobStore {
	m.now = now
	return m
}

func (m *MemoryBlobStore) Put(_ context.Context, key string, body io.Reader, size int64, meta BlobMeta) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("put blob %s: read %d bytes, expected %d", key, len(data), size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = memoryBlob{data: data, meta: meta}
	return nil
}

func (m *MemoryBlobStore) Get(_ context.Context, key string) (*Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	if !b.meta.Expires.IsZero() && !m.now().Before(b.meta.Expires) {
		delete(m.blobs, key)
		return nil, ErrBlobNotFound
	}
	return &Blob{
		Body:        io.NopCloser(bytes.NewReader(b.data)),
		ContentType: b.meta.ContentType,
		Size:        int64(len(b.data)),
	}, nil
}

func (m *MemoryBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Keys lists stored keys, expired or not.
func (m *MemoryBlobStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.blobs))
	for k := range m.blobs {
		keys = append(keys, k)
	}
	return keys
}
