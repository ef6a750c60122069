package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains blob storage abstractions. Two implementations
// exist: a local flat-directory store and an S3-compatible object store.
// Implementations rely on streaming I/O; blob contents are never buffered
// whole in memory.

// PutObjectOptions define optional parameters for storing blobs.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored blob.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob storage interface. Keys are the generated stored
// names; a key maps 1:1 to a blob.
type Storage interface {
	// Put stores a blob under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves a blob's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes a blob by key.
	Delete(ctx context.Context, key string) error
}
