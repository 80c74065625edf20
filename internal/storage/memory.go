package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

type blob struct {
	data        []byte
	contentType string
}

// MemoryStorage keeps uploads in process memory. Nothing survives a restart.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]blob)}
}

func (s *MemoryStorage) Save(ctx context.Context, path string, file io.Reader, contentType string) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[path] = blob{data: data, contentType: contentType}
	return nil
}

func (s *MemoryStorage) Open(ctx context.Context, path string) (*Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[path]
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{
		Body:        io.NopCloser(bytes.NewReader(b.data)),
		ContentType: b.contentType,
		Size:        int64(len(b.data)),
	}, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, path)
	return nil
}

func (s *MemoryStorage) URL(path string) string {
	return BlobPrefix + path
}
