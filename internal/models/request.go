package models

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FetchRequest names the object the pipeline should classify
type FetchRequest struct {
	S3Bucket string `json:"s3_bucket" validate:"required"`
	S3Key    string `json:"s3_key" validate:"required"`
}

// Validate checks that both location fields are present
func (r *FetchRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return newMalformed(jsonFieldName(verrs[0]), ErrMissingField)
		}
		return newMalformed("", err)
	}
	return nil
}

// ParseFetchRequest reads the fetcher's input event.
// The event may also arrive serialized into a JSON string.
func ParseFetchRequest(raw []byte) (*FetchRequest, error) {
	raw, err := unwrapString(raw, "event")
	if err != nil {
		return nil, err
	}

	var req FetchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, newMalformed("event", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// EncodeImage encodes image bytes for transport inside the envelope
func EncodeImage(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeImage reverses EncodeImage exactly
func DecodeImage(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, newMalformed("image_data", fmt.Errorf("invalid base64: %w", err))
	}
	return data, nil
}

// jsonFieldName maps a struct field back to its wire name
func jsonFieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "S3Bucket":
		return "s3_bucket"
	case "S3Key":
		return "s3_key"
	case "ImageData":
		return "image_data"
	default:
		return strings.ToLower(fe.Field())
	}
}
