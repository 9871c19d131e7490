package storage

import (
	"context"
)

// ObjectLocation identifies an object in the store
type ObjectLocation struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// ObjectStore provides read access to the content store holding source images.
// Implementations must not keep fetched bytes beyond the call that read them.
type ObjectStore interface {
	// GetObject reads the whole object at bucket/key
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	// Close cleans up any resources used by the store implementation
	Close() error
}

// ObjectWriter is implemented by stores that accept uploads (local and mock)
type ObjectWriter interface {
	PutObject(ctx context.Context, bucket, key string, data []byte) error
}

// StorageConfig represents configuration for object store providers
type StorageConfig struct {
	Type     string `json:"type" yaml:"type"`           // "s3", "local" or "mock"
	BasePath string `json:"base_path" yaml:"base_path"` // For local storage
	Region   string `json:"region" yaml:"region"`       // For S3
}
