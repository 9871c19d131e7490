package models

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Body is the payload carried between pipeline stages.
// Field order is fixed so re-serialization is deterministic.
type Body struct {
	ImageData  string     `json:"image_data" validate:"required"`
	S3Bucket   string     `json:"s3_bucket"`
	S3Key      string     `json:"s3_key"`
	Inferences Inferences `json:"inferences"`
}

// Response is the envelope every stage returns to the orchestrator.
// Body holds either a JSON object or a JSON string containing that object.
type Response struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// NewBody creates a fresh envelope body with an empty inference list
func NewBody(imageData, bucket, key string) *Body {
	return &Body{
		ImageData:  imageData,
		S3Bucket:   bucket,
		S3Key:      key,
		Inferences: EmptyInferences(),
	}
}

// NewStructuredResponse returns a response whose body is the structured object
func NewStructuredResponse(statusCode int, body *Body) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: statusCode, Body: data}, nil
}

// NewSerializedResponse returns a response whose body is the object serialized to a string
func NewSerializedResponse(statusCode int, body *Body) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	text, err := json.Marshal(string(data))
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: statusCode, Body: text}, nil
}

// NewPassthroughResponse returns a response whose body is the given body JSON text, serialized to a string unchanged
func NewPassthroughResponse(statusCode int, bodyJSON json.RawMessage) (*Response, error) {
	text, err := json.Marshal(string(bodyJSON))
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: statusCode, Body: text}, nil
}

// NewMessageResponse returns a response carrying a plain text body
func NewMessageResponse(statusCode int, message string) *Response {
	text, _ := json.Marshal(message)
	return &Response{StatusCode: statusCode, Body: text}
}

// IsSuccess reports whether the stage completed normally
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// DecodeBody normalizes the response body regardless of its representation
func (r *Response) DecodeBody() (*Body, error) {
	if r == nil {
		return nil, newMalformed("body", ErrEmptyEvent)
	}
	body, _, err := decodeBody(r.Body)
	return body, err
}

// DecodeEnvelope extracts the body from an incoming stage event.
//
// The event may be a full envelope ({"statusCode": ..., "body": ...}), a bare body
// object, or either of those serialized into a JSON string. The body itself may be an
// object or a string holding the serialized object. Anything else fails with a
// *MalformedEnvelopeError.
func DecodeEnvelope(raw []byte) (*Body, error) {
	body, _, err := DecodeEnvelopeRaw(raw)
	return body, err
}

// DecodeEnvelopeRaw is DecodeEnvelope that also returns the body object's JSON text
// exactly as received, after one level of string unwrapping. Fields outside Body are kept.
func DecodeEnvelopeRaw(raw []byte) (*Body, json.RawMessage, error) {
	raw, err := unwrapString(raw, "event")
	if err != nil {
		return nil, nil, err
	}
	if raw[0] != '{' {
		return nil, nil, newMalformed("event", ErrNotAnObject)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, newMalformed("event", err)
	}

	bodyRaw, ok := fields["body"]
	if !ok {
		// no envelope around it, the event is the body
		bodyRaw = raw
	}
	return decodeBody(bodyRaw)
}

func decodeBody(raw []byte) (*Body, json.RawMessage, error) {
	raw, err := unwrapString(raw, "body")
	if err != nil {
		return nil, nil, err
	}
	if raw[0] != '{' {
		return nil, nil, newMalformed("body", ErrNotAnObject)
	}

	var body Body
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, nil, newMalformed("body", err)
	}
	return &body, json.RawMessage(raw), nil
}

// unwrapString strips one level of string encoding if present
func unwrapString(raw []byte, field string) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, newMalformed(field, ErrEmptyEvent)
	}
	if raw[0] != '"' {
		return raw, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, newMalformed(field, err)
	}
	inner := bytes.TrimSpace([]byte(text))
	if len(inner) == 0 {
		return nil, newMalformed(field, ErrEmptyEvent)
	}
	return inner, nil
}
