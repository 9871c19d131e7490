// Command dispatch is a single Lambda entrypoint that picks the pipeline stage
// from the deployed function name.
package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"image-pipeline/internal/handlers"
	"image-pipeline/pkg/lambda"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

func main() {
	container, err := lambda.GetClientManager().GetContainer(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize container")
	}

	handler := handlers.NewLambdaHandler(
		container.SerializeService,
		container.ClassifyService,
		container.FilterService,
		container.Logger,
	)

	awslambda.Start(handlers.NewDispatcher(handler).Handle)
}
