package storage

import (
	"context"
	"sync"
)

// MockObjectStore is an in-memory implementation of ObjectStore for testing
type MockObjectStore struct {
	mu      sync.RWMutex
	objects map[ObjectLocation][]byte
	errors  map[ObjectLocation]error
	reads   int
}

// NewMockObjectStore creates a new MockObjectStore instance
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		objects: make(map[ObjectLocation][]byte),
		errors:  make(map[ObjectLocation]error),
	}
}

// PutObject stores a copy of data at bucket/key
func (m *MockObjectStore) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	if err := validateLocation(bucket, key); err != nil {
		return NewObjectRetrievalError("PutObject", bucket, key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[ObjectLocation{Bucket: bucket, Key: key}] = append([]byte(nil), data...)
	return nil
}

// FailWith makes reads of bucket/key fail with err (e.g. ErrAccessDenied)
func (m *MockObjectStore) FailWith(bucket, key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errors[ObjectLocation{Bucket: bucket, Key: key}] = err
}

// GetObject implements ObjectStore.GetObject
func (m *MockObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	m.mu.Lock()
	m.reads++
	m.mu.Unlock()

	if err := validateLocation(bucket, key); err != nil {
		return nil, NewObjectRetrievalError("GetObject", bucket, key, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	loc := ObjectLocation{Bucket: bucket, Key: key}
	if err, ok := m.errors[loc]; ok {
		return nil, NewObjectRetrievalError("GetObject", bucket, key, err)
	}

	data, exists := m.objects[loc]
	if !exists {
		return nil, NewObjectRetrievalError("GetObject", bucket, key, ErrObjectNotFound)
	}

	// Return a copy of the data
	return append([]byte(nil), data...), nil
}

// Reads returns how many GetObject calls the store has served
func (m *MockObjectStore) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

// Close implements ObjectStore.Close
func (m *MockObjectStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Clear all objects
	m.objects = make(map[ObjectLocation][]byte)
	m.errors = make(map[ObjectLocation]error)
	return nil
}
