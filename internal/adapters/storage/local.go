package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LocalObjectStore implements ObjectStore on the local filesystem.
// Objects live at <basePath>/<bucket>/<key>; intended for local development.
type LocalObjectStore struct {
	basePath string
}

// NewLocalObjectStore creates a new LocalObjectStore instance
func NewLocalObjectStore(basePath string) (*LocalObjectStore, error) {
	// Ensure base path exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, NewObjectRetrievalError("NewLocalObjectStore", "", "", err)
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewObjectRetrievalError("NewLocalObjectStore", "", "", err)
	}

	return &LocalObjectStore{basePath: absPath}, nil
}

// GetObject implements ObjectStore.GetObject
func (l *LocalObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := l.validateLocation(bucket, key); err != nil {
		return nil, NewObjectRetrievalError("GetObject", bucket, key, err)
	}

	data, err := os.ReadFile(l.getFilePath(bucket, key))
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, NewObjectRetrievalError("GetObject", bucket, key, ErrObjectNotFound)
		case os.IsPermission(err):
			return nil, NewObjectRetrievalError("GetObject", bucket, key, ErrAccessDenied)
		}
		return nil, NewObjectRetrievalError("GetObject", bucket, key, err)
	}

	return data, nil
}

// PutObject writes an object, creating the bucket directory as needed
func (l *LocalObjectStore) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	if err := l.validateLocation(bucket, key); err != nil {
		return NewObjectRetrievalError("PutObject", bucket, key, err)
	}

	filePath := l.getFilePath(bucket, key)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return NewObjectRetrievalError("PutObject", bucket, key, err)
	}

	// Write atomically by writing to temp file first
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return NewObjectRetrievalError("PutObject", bucket, key, err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return NewObjectRetrievalError("PutObject", bucket, key, err)
	}

	return nil
}

// Close implements ObjectStore.Close
func (l *LocalObjectStore) Close() error {
	return nil
}

// Helper methods

func (l *LocalObjectStore) validateLocation(bucket, key string) error {
	if err := validateLocation(bucket, key); err != nil {
		return err
	}

	// Prevent directory traversal
	for _, part := range []string{bucket, key} {
		if strings.Contains(part, "..") || strings.HasPrefix(part, "/") {
			return ErrInvalidLocation
		}
	}
	if strings.Contains(bucket, "/") {
		return ErrInvalidLocation
	}

	return nil
}

func (l *LocalObjectStore) getFilePath(bucket, key string) string {
	return filepath.Join(l.basePath, bucket, filepath.FromSlash(key))
}
