package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"image-pipeline/internal/models"
)

// pipelineService implements the PipelineService interface
type pipelineService struct {
	serializer SerializeService
	classifier ClassifyService
	filter     FilterService
	logger     logrus.FieldLogger
}

// NewPipelineService creates a new pipeline service instance
func NewPipelineService(serializer SerializeService, classifier ClassifyService, filter FilterService, logger logrus.FieldLogger) PipelineService {
	return &pipelineService{
		serializer: serializer,
		classifier: classifier,
		filter:     filter,
		logger:     logger,
	}
}

// Run chains serialize, classify and filter. Each stage receives the previous
// stage's response as JSON, the same bytes the orchestrator would pass along.
// Stage errors are returned unmodified.
func (s *pipelineService) Run(ctx context.Context, req *models.FetchRequest) (*models.Response, error) {
	serialized, err := s.serializer.Serialize(ctx, req)
	if err != nil {
		return nil, err
	}
	if !serialized.IsSuccess() {
		return nil, fmt.Errorf("serialize returned status %d", serialized.StatusCode)
	}

	event, err := json.Marshal(serialized)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal serialize output: %w", err)
	}
	classified, err := s.classifier.Classify(ctx, event)
	if err != nil {
		return nil, err
	}
	if !classified.IsSuccess() {
		return nil, fmt.Errorf("classify returned status %d", classified.StatusCode)
	}

	event, err = json.Marshal(classified)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classify output: %w", err)
	}
	filtered, err := s.filter.Filter(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"s3_bucket": req.S3Bucket,
		"s3_key":    req.S3Key,
	}).Info("Pipeline completed")

	return filtered, nil
}
