package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains the blob store abstraction behind project file
// uploads. Two implementations exist: a managed local directory and an
// S3-compatible object store. The metadata database stays authoritative:
// Put is the only operation allowed to fail a request, while Delete and
// DeleteMany failures are logged by callers and never surfaced.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob store client interface. Methods use context and
// streaming readers; keys are opaque and generated by the caller.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a key that does not exist
	// is a success, not an error; stored state may legitimately have
	// drifted from metadata after a partial failure.
	Delete(ctx context.Context, key string) error
	// DeleteMany removes a batch of objects, continuing past individual
	// failures and reporting the first one encountered.
	DeleteMany(ctx context.Context, keys []string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
