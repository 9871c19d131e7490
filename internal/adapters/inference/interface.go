package inference

import (
	"context"
)

// ContentTypeImage is the content type marker the image classification endpoint expects
const ContentTypeImage = "application/x-image"

// Endpoint invokes a hosted model with a raw payload and returns its response body.
// The response format is dictated by the model, not by the caller.
type Endpoint interface {
	Invoke(ctx context.Context, endpointName, contentType string, payload []byte) ([]byte, error)
}

// EndpointConfig represents configuration for inference providers
type EndpointConfig struct {
	Type         string `json:"type" yaml:"type"`                   // "sagemaker" or "mock"
	Region       string `json:"region" yaml:"region"`               // For SageMaker
	MockResponse string `json:"mock_response" yaml:"mock_response"` // Fixed body returned by the mock
}
