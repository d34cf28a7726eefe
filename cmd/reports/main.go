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
	"todo-backend/internal/reports"
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

	container.Logger.Info("reports cold start complete",
		zap.Duration("duration", time.Since(start)),
		zap.String("table", cfg.TableName),
	)
}

func handler(ctx context.Context, event appsync.ReportEvent) (*reports.Summary, error) {
	container.Logger.Info("generating report",
		zap.String("sub", event.Identity.Sub),
		zap.String("startDate", event.Arguments.StartDate),
		zap.String("endDate", event.Arguments.EndDate),
	)
	return container.Reports.Generate(ctx, event.Identity.Sub, event.Arguments.StartDate, event.Arguments.EndDate)
}

func main() {
	lambda.Start(handler)
}
