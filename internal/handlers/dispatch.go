package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"image-pipeline/internal/models"
	"image-pipeline/pkg/lambda"
)

// InvalidFunctionMessage is the body of the default dispatch response
const InvalidFunctionMessage = "Not a valid function name was called"

// route pairs a function name hint with its stage
type route struct {
	stage   string
	hints   []string
	handler lambda.HandlerFunc
}

// Dispatcher routes a single Lambda entrypoint to a stage by function name
type Dispatcher struct {
	routes       []route
	functionName func() string
	logger       logrus.FieldLogger
}

// NewDispatcher creates a dispatcher over the Lambda handler's stages
func NewDispatcher(h *LambdaHandler) *Dispatcher {
	return &Dispatcher{
		routes: []route{
			{stage: "serialize", hints: []string{"serialize"}, handler: h.HandleSerialize},
			{stage: "classify", hints: []string{"classif"}, handler: h.HandleClassify},
			{stage: "filter", hints: []string{"filter", "confidence"}, handler: h.HandleFilter},
		},
		functionName: currentFunctionName,
		logger:       h.logger,
	}
}

// WithFunctionName fixes the name used for routing instead of the Lambda environment
func (d *Dispatcher) WithFunctionName(name string) *Dispatcher {
	d.functionName = func() string { return name }
	return d
}

// Resolve returns the stage handler for a function name, or nil when no hint matches
func (d *Dispatcher) Resolve(functionName string) lambda.HandlerFunc {
	if r := d.match(functionName); r != nil {
		return r.handler
	}
	return nil
}

// Stage names the stage a function name routes to, empty when none
func (d *Dispatcher) Stage(functionName string) string {
	if r := d.match(functionName); r != nil {
		return r.stage
	}
	return ""
}

// match checks hints in route order, so the first matching stage wins
func (d *Dispatcher) match(functionName string) *route {
	name := strings.ToLower(functionName)
	for i := range d.routes {
		for _, hint := range d.routes[i].hints {
			if strings.Contains(name, hint) {
				return &d.routes[i]
			}
		}
	}
	return nil
}

// Handle invokes the stage selected by the function name.
// Unmatched names get the default 401 response rather than an error.
func (d *Dispatcher) Handle(ctx context.Context, event json.RawMessage) (*models.Response, error) {
	name := d.functionName()
	log := d.logger.WithFields(logrus.Fields{
		"function_name": name,
		"request_id":    RequestID(ctx),
	})

	handler := d.Resolve(name)
	if handler == nil {
		log.Warn("No stage matches function name")
		return models.NewMessageResponse(http.StatusUnauthorized, InvalidFunctionMessage), nil
	}

	log.WithField("stage", d.Stage(name)).Debug("Dispatching")
	return handler(ctx, event)
}

func currentFunctionName() string {
	if lambdacontext.FunctionName != "" {
		return lambdacontext.FunctionName
	}
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
}
