package lambda

import (
	"context"
	"encoding/json"

	"image-pipeline/internal/models"
)

// HandlerFunc is the signature every pipeline stage exposes to the Lambda runtime.
// The event is left raw so each stage can normalize the envelope itself.
type HandlerFunc func(ctx context.Context, event json.RawMessage) (*models.Response, error)
