package inference

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime/types"
	"github.com/aws/smithy-go"
)

// SageMakerRuntimeAPI is the subset of the SageMaker runtime client used for inference
type SageMakerRuntimeAPI interface {
	InvokeEndpoint(
		ctx context.Context,
		params *sagemakerruntime.InvokeEndpointInput,
		optFns ...func(*sagemakerruntime.Options),
	) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// SageMakerEndpoint implements Endpoint with the SageMaker runtime InvokeEndpoint API
type SageMakerEndpoint struct {
	client SageMakerRuntimeAPI
}

// NewSageMakerEndpoint creates a new SageMakerEndpoint from an SDK client
func NewSageMakerEndpoint(client SageMakerRuntimeAPI) *SageMakerEndpoint {
	return &SageMakerEndpoint{client: client}
}

// NewSageMakerEndpointFromConfig builds the runtime client from a loaded AWS config
func NewSageMakerEndpointFromConfig(cfg aws.Config) *SageMakerEndpoint {
	return NewSageMakerEndpoint(sagemakerruntime.NewFromConfig(cfg))
}

// Invoke implements Endpoint.Invoke
func (s *SageMakerEndpoint) Invoke(ctx context.Context, endpointName, contentType string, payload []byte) ([]byte, error) {
	if endpointName == "" {
		return nil, NewEndpointInvocationError(endpointName, ErrEndpointNotSet)
	}
	if len(payload) == 0 {
		return nil, NewEndpointInvocationError(endpointName, ErrEmptyPayload)
	}

	out, err := s.client.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(endpointName),
		ContentType:  aws.String(contentType),
		Body:         payload,
	})
	if err != nil {
		return nil, NewEndpointInvocationError(endpointName, classifySageMakerError(err))
	}
	if out == nil || out.Body == nil {
		return nil, NewEndpointInvocationError(endpointName, ErrEndpointNoResponse)
	}

	return out.Body, nil
}

func classifySageMakerError(err error) error {
	var modelErr *types.ModelError
	if errors.As(err, &modelErr) {
		return fmt.Errorf("%w: %w", ErrModelError, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ValidationError":
			// Unknown endpoint names surface as validation errors
			return fmt.Errorf("%w: %w", ErrEndpointNotFound, err)
		case "ThrottlingException", "ServiceUnavailable":
			return fmt.Errorf("%w: %w", ErrEndpointThrottled, err)
		}
	}

	return err
}
