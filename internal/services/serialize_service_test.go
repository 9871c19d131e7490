package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"image-pipeline/internal/adapters/storage"
	"image-pipeline/internal/models"
)

func TestSerializeService_Serialize(t *testing.T) {
	ctx := context.Background()

	t.Run("encodes object with provenance", func(t *testing.T) {
		logger, hook := newTestLogger()
		store := storage.NewMockObjectStore()
		_ = store.PutObject(ctx, "b", "k", pngBytes)

		resp, err := NewSerializeService(store, logger).Serialize(ctx, &models.FetchRequest{S3Bucket: "b", S3Key: "k"})
		if err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		// The serializer emits a structured body
		want := `{"image_data":"` + models.EncodeImage(pngBytes) + `","s3_bucket":"b","s3_key":"k","inferences":[]}`
		if string(resp.Body) != want {
			t.Errorf("Unexpected body:\n got  %s\n want %s", resp.Body, want)
		}

		body, err := resp.DecodeBody()
		if err != nil {
			t.Fatalf("DecodeBody failed: %v", err)
		}
		image, err := models.DecodeImage(body.ImageData)
		if err != nil {
			t.Fatalf("DecodeImage failed: %v", err)
		}
		if string(image) != string(pngBytes) {
			t.Error("Image bytes changed in transit")
		}

		if store.Reads() != 1 {
			t.Errorf("Expected exactly one read, got %d", store.Reads())
		}
		if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.InfoLevel {
			t.Errorf("Expected info log entry, got %+v", entry)
		}
	})

	t.Run("missing object propagates", func(t *testing.T) {
		logger, hook := newTestLogger()
		store := storage.NewMockObjectStore()

		_, err := NewSerializeService(store, logger).Serialize(ctx, &models.FetchRequest{S3Bucket: "b", S3Key: "k"})
		if !storage.IsNotFound(err) {
			t.Fatalf("Expected not found error, got %v", err)
		}
		var retrievalErr *storage.ObjectRetrievalError
		if !errors.As(err, &retrievalErr) {
			t.Fatalf("Expected *ObjectRetrievalError, got %T", err)
		}
		if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
			t.Errorf("Expected error log entry, got %+v", entry)
		}
	})

	t.Run("access denied propagates", func(t *testing.T) {
		logger, _ := newTestLogger()
		store := storage.NewMockObjectStore()
		store.FailWith("b", "k", storage.ErrAccessDenied)

		_, err := NewSerializeService(store, logger).Serialize(ctx, &models.FetchRequest{S3Bucket: "b", S3Key: "k"})
		if !storage.IsAccessDenied(err) {
			t.Fatalf("Expected access denied error, got %v", err)
		}
	})

	t.Run("missing fields fail before reading", func(t *testing.T) {
		logger, _ := newTestLogger()
		store := storage.NewMockObjectStore()
		service := NewSerializeService(store, logger)

		for _, req := range []*models.FetchRequest{nil, {S3Bucket: "b"}, {S3Key: "k"}} {
			if _, err := service.Serialize(ctx, req); !models.IsMalformedEnvelope(err) {
				t.Errorf("Serialize(%+v): expected malformed envelope error, got %v", req, err)
			}
		}
		if store.Reads() != 0 {
			t.Errorf("Expected no reads, got %d", store.Reads())
		}
	})
}
