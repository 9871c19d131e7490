package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"image-pipeline/internal/models"
)

// DefaultConfidenceThreshold is the gate threshold used when none is configured
const DefaultConfidenceThreshold = 0.93

// FilterConfig holds gate configuration
type FilterConfig struct {
	ConfidenceThreshold float64 // Values outside (0, 1] fall back to DefaultConfidenceThreshold
}

// filterService implements the FilterService interface
type filterService struct {
	threshold float64
	logger    logrus.FieldLogger
}

// NewFilterService creates a new filter service instance
func NewFilterService(config FilterConfig, logger logrus.FieldLogger) FilterService {
	if config.ConfidenceThreshold <= 0 || config.ConfidenceThreshold > 1 {
		config.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	return &filterService{
		threshold: config.ConfidenceThreshold,
		logger:    logger,
	}
}

// Filter passes the body through unchanged, as a serialized string, when max(inferences) >= threshold
func (s *filterService) Filter(ctx context.Context, event []byte) (*models.Response, error) {
	body, bodyJSON, err := models.DecodeEnvelopeRaw(event)
	if err != nil {
		return nil, err
	}

	scores, err := body.Inferences.Scores()
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"s3_bucket": body.S3Bucket,
		"s3_key":    body.S3Key,
		"threshold": s.threshold,
		"scores":    scores,
	})

	if err := s.evaluate(scores); err != nil {
		log.WithError(err).Error("Confidence threshold not met")
		return nil, err
	}

	resp, err := models.NewPassthroughResponse(http.StatusOK, bodyJSON)
	if err != nil {
		return nil, err
	}

	log.Info("Confidence threshold met")
	return resp, nil
}

func (s *filterService) evaluate(scores []float64) error {
	best, ok := models.MaxScore(scores)
	if !ok {
		return &ThresholdNotMetError{
			Threshold: s.threshold,
			Scores:    scores,
			Err:       ErrNoInferences,
		}
	}
	if best < s.threshold {
		return &ThresholdNotMetError{
			Threshold: s.threshold,
			MaxScore:  best,
			Scores:    scores,
		}
	}
	return nil
}
