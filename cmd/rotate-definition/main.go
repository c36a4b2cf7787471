// Package main implements the scheduled Lambda that rotates the
// definition of the day. An EventBridge rule invokes it daily at midnight.
package main

import (
	"context"
	"log"

	"clouddictionary/infrastructure/config"
	"clouddictionary/infrastructure/di"
	apperrors "clouddictionary/pkg/errors"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

var container *di.Container

func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependency container: %v", err)
	}
}

// HandleRequest rotates the definition of the day. An empty collection is
// logged and not retried.
func HandleRequest(ctx context.Context, event awsevents.CloudWatchEvent) error {
	logger := container.Logger.With(zap.String("event_id", event.ID))

	d, err := container.DefinitionOfTheDayService.Rotate(ctx)
	if err != nil {
		if apperrors.IsNotFound(err) {
			logger.Error("No definition could be selected for the definition of the day")
			return nil
		}
		logger.Error("Failed to rotate definition of the day", zap.Error(err))
		return err
	}

	logger.Info("Definition of the day updated", zap.String("word", d.Word), zap.String("id", d.ID))
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
