// Command filter is the Lambda function that fails the invocation when no inference score reaches the confidence threshold.
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

	awslambda.Start(handler.HandleFilter)
}
