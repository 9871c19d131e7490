package storage

import (
	"errors"
	"fmt"
)

// Common object store error types
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidLocation    = errors.New("invalid object location")
	ErrStorageUnavailable = errors.New("storage service unavailable")
)

// ObjectRetrievalError represents a failed read with the location involved
type ObjectRetrievalError struct {
	Op     string // Operation that failed (e.g., "GetObject")
	Bucket string // Container identifier
	Key    string // Object key
	Err    error  // Underlying error
}

func (e *ObjectRetrievalError) Error() string {
	if e.Bucket != "" || e.Key != "" {
		return fmt.Sprintf("storage %s operation failed for 's3://%s/%s': %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s operation failed: %v", e.Op, e.Err)
}

func (e *ObjectRetrievalError) Unwrap() error {
	return e.Err
}

// Location returns the object the error refers to
func (e *ObjectRetrievalError) Location() ObjectLocation {
	return ObjectLocation{Bucket: e.Bucket, Key: e.Key}
}

// NewObjectRetrievalError creates a new ObjectRetrievalError
func NewObjectRetrievalError(op, bucket, key string, err error) *ObjectRetrievalError {
	return &ObjectRetrievalError{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// IsNotFound returns true if the error indicates the object does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsAccessDenied returns true if the caller may not read the object
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsRetrievalError returns true for any object store read failure
func IsRetrievalError(err error) bool {
	var retrievalErr *ObjectRetrievalError
	return errors.As(err, &retrievalErr)
}

func validateLocation(bucket, key string) error {
	if bucket == "" || key == "" {
		return ErrInvalidLocation
	}
	return nil
}
