package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestMockObjectStore_GetObject(t *testing.T) {
	store := NewMockObjectStore()
	defer store.Close()

	ctx := context.Background()
	image := []byte("\x89PNG\r\n\x1a\n")
	if err := store.PutObject(ctx, "b", "k", image); err != nil {
		t.Fatalf("PutObject failed: %v", err)
	}
	store.FailWith("b", "secret.png", ErrAccessDenied)

	tests := []struct {
		name     string
		bucket   string
		key      string
		want     []byte
		checkErr func(error) bool
	}{
		{name: "existing object", bucket: "b", key: "k", want: image},
		{name: "missing object", bucket: "b", key: "missing", checkErr: IsNotFound},
		{name: "missing bucket", bucket: "other", key: "k", checkErr: IsNotFound},
		{name: "access denied", bucket: "b", key: "secret.png", checkErr: IsAccessDenied},
		{name: "empty key", bucket: "b", key: "", checkErr: func(err error) bool { return errors.Is(err, ErrInvalidLocation) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := store.GetObject(ctx, tt.bucket, tt.key)
			if tt.checkErr != nil {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !tt.checkErr(err) {
					t.Errorf("Unexpected error: %v", err)
				}
				if !IsRetrievalError(err) {
					t.Errorf("Expected *ObjectRetrievalError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetObject failed: %v", err)
			}
			if !bytes.Equal(data, tt.want) {
				t.Errorf("Data mismatch: got %q, want %q", data, tt.want)
			}
		})
	}

	if store.Reads() != len(tests) {
		t.Errorf("Expected %d reads, got %d", len(tests), store.Reads())
	}
}

func TestMockObjectStore_ReturnsCopies(t *testing.T) {
	store := NewMockObjectStore()
	ctx := context.Background()

	original := []byte("abc")
	if err := store.PutObject(ctx, "b", "k", original); err != nil {
		t.Fatalf("PutObject failed: %v", err)
	}
	original[0] = 'z'

	data, err := store.GetObject(ctx, "b", "k")
	if err != nil {
		t.Fatalf("GetObject failed: %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("Stored data was aliased: got %q", data)
	}
	data[1] = 'z'

	again, _ := store.GetObject(ctx, "b", "k")
	if string(again) != "abc" {
		t.Errorf("Returned data was aliased: got %q", again)
	}
}

func TestMockObjectStore_Close(t *testing.T) {
	store := NewMockObjectStore()
	ctx := context.Background()
	_ = store.PutObject(ctx, "b", "k", []byte("x"))

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := store.GetObject(ctx, "b", "k"); !IsNotFound(err) {
		t.Errorf("Expected not found after Close, got %v", err)
	}
}
