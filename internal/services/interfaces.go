package services

import (
	"context"

	"image-pipeline/internal/models"
)

// SerializeService fetches the source image and builds the initial envelope
type SerializeService interface {
	Serialize(ctx context.Context, req *models.FetchRequest) (*models.Response, error)
}

// ClassifyService attaches the endpoint's confidence scores to an envelope
type ClassifyService interface {
	// Classify accepts the serializer's output event in either body representation
	Classify(ctx context.Context, event []byte) (*models.Response, error)
}

// FilterService is the confidence gate
type FilterService interface {
	// Filter returns a *ThresholdNotMetError when no score reaches the threshold.
	// Callers must propagate that error, never convert it into a response.
	Filter(ctx context.Context, event []byte) (*models.Response, error)
}

// PipelineService runs all stages in order, handing serialized output from one to the next
type PipelineService interface {
	Run(ctx context.Context, req *models.FetchRequest) (*models.Response, error)
}
