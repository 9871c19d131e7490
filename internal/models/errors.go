package models

import (
	"errors"
	"fmt"
)

// Envelope error types
var (
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrEmptyEvent        = errors.New("empty event")
	ErrNotAnObject       = errors.New("expected a JSON object")
	ErrMissingField      = errors.New("required field missing")
	ErrInvalidScores     = errors.New("unrecognized inference format")
)

// MalformedEnvelopeError reports a payload that is missing fields or has the wrong shape
type MalformedEnvelopeError struct {
	Field string // Envelope field that could not be read
	Err   error  // Underlying error
}

func (e *MalformedEnvelopeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed envelope: field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed envelope: %v", e.Err)
}

func (e *MalformedEnvelopeError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match any envelope failure against ErrMalformedEnvelope
func (e *MalformedEnvelopeError) Is(target error) bool {
	return target == ErrMalformedEnvelope
}

// NewMalformedEnvelopeError creates a new MalformedEnvelopeError
func NewMalformedEnvelopeError(field string, err error) *MalformedEnvelopeError {
	return newMalformed(field, err)
}

func newMalformed(field string, err error) *MalformedEnvelopeError {
	return &MalformedEnvelopeError{Field: field, Err: err}
}

// IsMalformedEnvelope returns true if the error was caused by an unreadable payload
func IsMalformedEnvelope(err error) bool {
	return errors.Is(err, ErrMalformedEnvelope)
}
