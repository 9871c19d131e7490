package inference

import (
	"errors"
	"fmt"
)

// Common inference error types
var (
	ErrEmptyPayload       = errors.New("empty payload")
	ErrEndpointNotSet     = errors.New("endpoint name not configured")
	ErrModelError         = errors.New("model returned an error")
	ErrEndpointNotFound   = errors.New("endpoint not found")
	ErrEndpointThrottled  = errors.New("endpoint throttled")
	ErrEndpointNoResponse = errors.New("endpoint returned no body")
)

// EndpointInvocationError represents a failed call to the inference endpoint
type EndpointInvocationError struct {
	Endpoint string // Endpoint name that was invoked
	Err      error  // Underlying error
}

func (e *EndpointInvocationError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("inference endpoint '%s' invocation failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("inference endpoint invocation failed: %v", e.Err)
}

func (e *EndpointInvocationError) Unwrap() error {
	return e.Err
}

// NewEndpointInvocationError creates a new EndpointInvocationError
func NewEndpointInvocationError(endpoint string, err error) *EndpointInvocationError {
	return &EndpointInvocationError{
		Endpoint: endpoint,
		Err:      err,
	}
}

// IsInvocationError returns true for any inference call failure
func IsInvocationError(err error) bool {
	var invocationErr *EndpointInvocationError
	return errors.As(err, &invocationErr)
}
