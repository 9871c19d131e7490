package inference

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// EndpointType represents the type of inference implementation
type EndpointType string

const (
	EndpointTypeSageMaker EndpointType = "sagemaker"
	EndpointTypeMock      EndpointType = "mock"
)

// DefaultMockResponse is what the mock endpoint answers when none is configured
const DefaultMockResponse = "[0.03, 0.97]"

// Factory creates Endpoint instances based on configuration
type Factory struct {
	awsConfig *aws.Config
}

// NewFactory creates a new endpoint factory. awsConfig is only required for SageMaker.
func NewFactory(awsConfig *aws.Config) *Factory {
	return &Factory{awsConfig: awsConfig}
}

// Create creates an Endpoint instance based on the provided configuration
func (f *Factory) Create(config *EndpointConfig) (Endpoint, error) {
	if config == nil {
		return nil, fmt.Errorf("inference config is required")
	}

	switch EndpointType(strings.ToLower(config.Type)) {
	case EndpointTypeSageMaker:
		if f.awsConfig == nil {
			return nil, fmt.Errorf("failed to create %s endpoint: AWS configuration is required", config.Type)
		}
		cfg := f.awsConfig.Copy()
		if config.Region != "" {
			cfg.Region = config.Region
		}
		return NewSageMakerEndpointFromConfig(cfg), nil
	case EndpointTypeMock:
		response := config.MockResponse
		if response == "" {
			response = DefaultMockResponse
		}
		return NewMockEndpoint(response), nil
	default:
		return nil, fmt.Errorf("unsupported inference type: %s", config.Type)
	}
}

// RequiresAWS reports whether the configured endpoint type needs AWS credentials
func RequiresAWS(config *EndpointConfig) bool {
	return config != nil && EndpointType(strings.ToLower(config.Type)) == EndpointTypeSageMaker
}
