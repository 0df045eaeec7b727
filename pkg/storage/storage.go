package storage

import (
	"context"
	"time"
)

// ObjectStore is an S3-compatible object store the dispatcher uploads into
type ObjectStore interface {
	// Upload stores the local file at localPath as bucket/key, overwriting any existing object
	Upload(ctx context.Context, localPath, bucket, key string) error

	// ListObjects returns at most maxKeys objects from bucket
	ListObjects(ctx context.Context, bucket string, maxKeys int32) ([]ObjectInfo, error)
}

// ObjectInfo represents metadata about a stored object
type ObjectInfo struct {
	Key     string    // Object key
	Size    int64     // Size in bytes
	ModTime time.Time // Last modification time
}
