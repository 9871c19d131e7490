package inference

import (
	"context"
	"sync"
)

// MockEndpoint is an in-memory Endpoint returning a fixed response
type MockEndpoint struct {
	mu       sync.Mutex
	response []byte
	err      error
	calls    []MockCall
}

// MockCall records a single invocation of the mock
type MockCall struct {
	EndpointName string
	ContentType  string
	Payload      []byte
}

// NewMockEndpoint creates a mock that answers every call with response
func NewMockEndpoint(response string) *MockEndpoint {
	return &MockEndpoint{response: []byte(response)}
}

// FailWith makes every subsequent call fail with err
func (m *MockEndpoint) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Invoke implements Endpoint.Invoke
func (m *MockEndpoint) Invoke(ctx context.Context, endpointName, contentType string, payload []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{
		EndpointName: endpointName,
		ContentType:  contentType,
		Payload:      append([]byte(nil), payload...),
	})

	if m.err != nil {
		return nil, NewEndpointInvocationError(endpointName, m.err)
	}
	if len(payload) == 0 {
		return nil, NewEndpointInvocationError(endpointName, ErrEmptyPayload)
	}
	return append([]byte(nil), m.response...), nil
}

// Calls returns the invocations recorded so far
func (m *MockEndpoint) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}
