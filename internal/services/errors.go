package services

import (
	"errors"
	"fmt"
)

// ThresholdNotMetMarker identifies a gate failure to the orchestrator
const ThresholdNotMetMarker = "THRESHOLD_CONFIDENCE_NOT_MET"

// ErrNoInferences is the cause when the envelope carries an empty score list
var ErrNoInferences = errors.New("no inference scores to evaluate")

// ThresholdNotMetError aborts the pipeline when no confidence score reaches the threshold
type ThresholdNotMetError struct {
	Threshold float64   // Threshold in force
	MaxScore  float64   // Highest score seen, zero when there were none
	Scores    []float64 // Scores that were evaluated
	Err       error     // Optional cause (ErrNoInferences)
}

func (e *ThresholdNotMetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (threshold %g)", ThresholdNotMetMarker, e.Err, e.Threshold)
	}
	return fmt.Sprintf("%s: max confidence %g below threshold %g", ThresholdNotMetMarker, e.MaxScore, e.Threshold)
}

func (e *ThresholdNotMetError) Unwrap() error {
	return e.Err
}

// Marker returns the fixed marker carried by every gate failure
func (e *ThresholdNotMetError) Marker() string {
	return ThresholdNotMetMarker
}

// IsThresholdNotMet returns true if the error is a gate failure
func IsThresholdNotMet(err error) bool {
	var thresholdErr *ThresholdNotMetError
	return errors.As(err, &thresholdErr)
}
