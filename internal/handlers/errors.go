package handlers

import (
	"errors"
	"net/http"

	"image-pipeline/internal/adapters/inference"
	"image-pipeline/internal/adapters/storage"
	"image-pipeline/internal/models"
	"image-pipeline/internal/services"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Message string                  `json:"message"`
	Object  *storage.ObjectLocation `json:"object,omitempty"`
}

// errorStatus maps a pipeline error to the local server's HTTP status and error label
func errorStatus(err error) (int, string) {
	var thresholdErr *services.ThresholdNotMetError

	switch {
	case errors.As(err, &thresholdErr):
		return http.StatusUnprocessableEntity, thresholdErr.Marker()
	case models.IsMalformedEnvelope(err):
		return http.StatusBadRequest, "Malformed envelope"
	case errors.Is(err, storage.ErrInvalidLocation):
		return http.StatusBadRequest, "Invalid object location"
	case storage.IsNotFound(err):
		return http.StatusNotFound, "Object not found"
	case storage.IsAccessDenied(err):
		return http.StatusForbidden, "Access denied"
	case inference.IsInvocationError(err):
		return http.StatusBadGateway, "Inference endpoint failed"
	case storage.IsRetrievalError(err):
		return http.StatusBadGateway, "Object retrieval failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// newErrorResponse builds the JSON error body for err
func newErrorResponse(err error) (int, ErrorResponse) {
	status, label := errorStatus(err)
	resp := ErrorResponse{
		Error:   label,
		Message: err.Error(),
	}

	var retrievalErr *storage.ObjectRetrievalError
	if errors.As(err, &retrievalErr) {
		loc := retrievalErr.Location()
		resp.Object = &loc
	}
	return status, resp
}
