package services

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"image-pipeline/internal/adapters/inference"
	"image-pipeline/internal/models"
)

// ClassifyConfig holds classifier configuration
type ClassifyConfig struct {
	EndpointName string
	ContentType  string
}

// classifyService implements the ClassifyService interface
type classifyService struct {
	endpoint  inference.Endpoint
	config    ClassifyConfig
	validator *validator.Validate
	logger    logrus.FieldLogger
}

// NewClassifyService creates a new classify service instance
func NewClassifyService(endpoint inference.Endpoint, config ClassifyConfig, logger logrus.FieldLogger) ClassifyService {
	if config.ContentType == "" {
		config.ContentType = inference.ContentTypeImage
	}
	return &classifyService{
		endpoint:  endpoint,
		config:    config,
		validator: validator.New(),
		logger:    logger,
	}
}

// Classify decodes the image, calls the endpoint once and stores its response text in inferences
func (s *classifyService) Classify(ctx context.Context, event []byte) (*models.Response, error) {
	body, err := models.DecodeEnvelope(event)
	if err != nil {
		return nil, err
	}
	if err := s.validator.StructPartial(body, "ImageData"); err != nil {
		return nil, models.NewMalformedEnvelopeError("image_data", models.ErrMissingField)
	}

	image, err := models.DecodeImage(body.ImageData)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"s3_bucket": body.S3Bucket,
		"s3_key":    body.S3Key,
		"endpoint":  s.config.EndpointName,
	})

	result, err := s.endpoint.Invoke(ctx, s.config.EndpointName, s.config.ContentType, image)
	if err != nil {
		log.WithError(err).Error("Inference endpoint invocation failed")
		return nil, err
	}

	body.Inferences, err = models.NewTextInferences(string(result))
	if err != nil {
		return nil, err
	}

	resp, err := models.NewSerializedResponse(http.StatusOK, body)
	if err != nil {
		return nil, err
	}

	log.WithField("inferences", string(result)).Info("Image classified")
	return resp, nil
}
