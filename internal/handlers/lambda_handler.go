package handlers

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"image-pipeline/internal/adapters/inference"
	"image-pipeline/internal/models"
	"image-pipeline/internal/services"
)

// LambdaHandler adapts the pipeline services to Lambda invocations.
// Service errors are always returned to the runtime as invocation failures.
type LambdaHandler struct {
	serializeService services.SerializeService
	classifyService  services.ClassifyService
	filterService    services.FilterService
	logger           logrus.FieldLogger
}

// NewLambdaHandler creates a new Lambda handler
func NewLambdaHandler(serializeService services.SerializeService, classifyService services.ClassifyService, filterService services.FilterService, logger logrus.FieldLogger) *LambdaHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LambdaHandler{
		serializeService: serializeService,
		classifyService:  classifyService,
		filterService:    filterService,
		logger:           logger,
	}
}

// HandleSerialize fetches the requested object and emits the initial envelope
func (h *LambdaHandler) HandleSerialize(ctx context.Context, event json.RawMessage) (*models.Response, error) {
	log := h.invocationLogger(ctx, "serialize")

	req, err := models.ParseFetchRequest(event)
	if err != nil {
		log.WithError(err).Error("Invalid fetch request")
		return nil, err
	}

	// Store failures are logged by the serialize service
	return h.serializeService.Serialize(ctx, req)
}

// HandleClassify attaches inference scores to the serializer's envelope
func (h *LambdaHandler) HandleClassify(ctx context.Context, event json.RawMessage) (*models.Response, error) {
	log := h.invocationLogger(ctx, "classify")

	resp, err := h.classifyService.Classify(ctx, event)
	if err != nil {
		// Endpoint failures are logged by the classify service
		if !inference.IsInvocationError(err) {
			log.WithError(err).Error("Classify failed")
		}
		return nil, err
	}
	return resp, nil
}

// HandleFilter applies the confidence gate
func (h *LambdaHandler) HandleFilter(ctx context.Context, event json.RawMessage) (*models.Response, error) {
	log := h.invocationLogger(ctx, "filter")

	resp, err := h.filterService.Filter(ctx, event)
	if err != nil {
		// Gate failures are logged by the filter service
		if !services.IsThresholdNotMet(err) {
			log.WithError(err).Error("Filter failed")
		}
		return nil, err
	}
	return resp, nil
}

func (h *LambdaHandler) invocationLogger(ctx context.Context, function string) logrus.FieldLogger {
	log := h.logger.WithFields(logrus.Fields{
		"function":   function,
		"request_id": RequestID(ctx),
	})
	log.Debug("Invocation started")
	return log
}

// RequestID returns the Lambda request id, or a generated one outside Lambda
func RequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.New().String()
}
