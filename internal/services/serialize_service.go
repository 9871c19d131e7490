package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"image-pipeline/internal/adapters/storage"
	"image-pipeline/internal/models"
)

// serializeService implements the SerializeService interface
type serializeService struct {
	store  storage.ObjectStore
	logger logrus.FieldLogger
}

// NewSerializeService creates a new serialize service instance
func NewSerializeService(store storage.ObjectStore, logger logrus.FieldLogger) SerializeService {
	return &serializeService{
		store:  store,
		logger: logger,
	}
}

// Serialize reads the object once and returns it base64 encoded with its provenance
func (s *serializeService) Serialize(ctx context.Context, req *models.FetchRequest) (*models.Response, error) {
	if req == nil {
		return nil, models.NewMalformedEnvelopeError("event", models.ErrEmptyEvent)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"s3_bucket": req.S3Bucket,
		"s3_key":    req.S3Key,
	})

	data, err := s.store.GetObject(ctx, req.S3Bucket, req.S3Key)
	if err != nil {
		log.WithError(err).Error("Failed to fetch image")
		return nil, err
	}

	body := models.NewBody(models.EncodeImage(data), req.S3Bucket, req.S3Key)

	resp, err := models.NewStructuredResponse(http.StatusOK, body)
	if err != nil {
		return nil, err
	}

	log.WithField("image_bytes", len(data)).Info("Image serialized")
	return resp, nil
}
