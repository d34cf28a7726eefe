// Package di wires the application's dependencies.
package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"todo-backend/internal/config"
	"todo-backend/internal/reports"
	"todo-backend/internal/repository"
	dynamorepo "todo-backend/internal/repository/dynamodb"
	"todo-backend/internal/resolvers"
)

// Container holds all application dependencies.
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	DynamoDB   *awsdynamodb.Client
	TodoRepo   repository.TodoRepository
	Dispatcher *resolvers.Dispatcher
	Reports    *reports.Generator
}

// ProvideLogger creates a logger appropriate for the environment.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zcfg.Build()
}

// ProvideAWSConfig loads AWS configuration for the target region.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client.
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideTodoRepository creates the todo table gateway.
func ProvideTodoRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) repository.TodoRepository {
	return dynamorepo.NewTodoRepository(client, cfg.TableName, cfg.UserIndexName, logger)
}

// ProvideResolver creates the field resolvers.
func ProvideResolver(repo repository.TodoRepository, logger *zap.Logger) *resolvers.Resolver {
	return resolvers.New(repo, logger)
}

// ProvideDispatcher creates the field dispatcher.
func ProvideDispatcher(r *resolvers.Resolver, logger *zap.Logger) (*resolvers.Dispatcher, error) {
	return resolvers.NewDispatcher(r, logger)
}

// ProvideReportGenerator creates the report generator.
func ProvideReportGenerator(repo repository.TodoRepository, logger *zap.Logger) *reports.Generator {
	return reports.NewGenerator(repo, logger)
}
