package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"todo-backend/internal/appsync"
	"todo-backend/internal/config"
	"todo-backend/internal/di"
)

var container *di.Container

// init runs during cold start.
func init() {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	container.Logger.Info("resolver cold start complete",
		zap.Duration("duration", time.Since(start)),
		zap.String("table", cfg.TableName),
	)
}

func handler(ctx context.Context, event appsync.ResolverEvent) (any, error) {
	return container.Dispatcher.Dispatch(ctx, &event)
}

func main() {
	lambda.Start(handler)
}
