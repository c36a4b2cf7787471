package di

import (
	"context"

	"clouddictionary/application/ports"
	"clouddictionary/application/services"
	"clouddictionary/infrastructure/config"
	"clouddictionary/infrastructure/messaging/eventbridge"
	"clouddictionary/infrastructure/persistence/dynamodb"
	"clouddictionary/infrastructure/scheduler"
	"clouddictionary/interfaces/http/rest"
	"clouddictionary/interfaces/http/rest/handlers"
	"clouddictionary/interfaces/http/rest/middleware"
	apperrors "clouddictionary/pkg/errors"
	"clouddictionary/pkg/observability"
	"clouddictionary/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "clouddictionary"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", serviceName), zap.String("environment", cfg.Environment)), nil
}

// ProvideAWSConfig creates AWS configuration. With tracing enabled every
// SDK call is recorded as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client, pointed at
// DYNAMODB_ENDPOINT when one is configured.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideCollector creates the Prometheus collector, or nil when metrics
// are disabled.
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector(serviceName)
}

// ProvideCloudWatchMetrics creates the CloudWatch recorder. It publishes
// nothing unless metrics are enabled.
func ProvideCloudWatchMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	var api observability.CloudWatchAPI
	if cfg.EnableMetrics {
		api = client
	}
	return observability.NewMetrics(cfg.MetricsNamespace, api, logger)
}

// ProvideMetrics combines every enabled metrics sink
func ProvideMetrics(cloudWatch *observability.Metrics, collector *observability.Collector) ports.Metrics {
	fanout := observability.Fanout{cloudWatch}
	if collector != nil {
		fanout = append(fanout, collector)
	}
	return fanout
}

// ProvideEventPublisher creates the domain event publisher. Without a bus
// name events are only logged.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return eventbridge.NewNoopPublisher(logger)
	}
	return eventbridge.NewBreakingPublisher(
		eventbridge.NewPublisher(client, cfg.EventBusName, logger),
		eventbridge.DefaultBreakerConfig(),
		logger,
	)
}

// ProvideRandomSource returns the process-wide random source
func ProvideRandomSource() utils.RandomSource {
	return utils.DefaultRandomSource()
}

// ProvideDefinitionRepository creates a definition repository
func ProvideDefinitionRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	random utils.RandomSource,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.DefinitionRepository {
	return dynamodb.NewDefinitionRepository(
		client,
		cfg.DefinitionsTable,
		cfg.IDIndexName,
		random,
		tracer,
		logger,
	)
}

// ProvideDefinitionOfTheDayRepository creates the definition-of-the-day repository
func ProvideDefinitionOfTheDayRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.DefinitionOfTheDayRepository {
	return dynamodb.NewDefinitionOfTheDayRepository(client, cfg.DefinitionOfTheDayTable, tracer, logger)
}

// ProvideProjectRepository creates a project repository
func ProvideProjectRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.ProjectRepository {
	return dynamodb.NewProjectRepository(client, cfg.ProjectsTable, tracer, logger)
}

// ProvideErrorHandler creates the HTTP error handler. Stack traces are
// logged outside production.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, !cfg.IsProduction())
}

// ProvideDefinitionHandler creates the definition HTTP handler
func ProvideDefinitionHandler(
	definitions *services.DefinitionService,
	today *services.DefinitionOfTheDayService,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *handlers.DefinitionHandler {
	return handlers.NewDefinitionHandler(definitions, today, errorHandler, logger)
}

// ProvideProjectHandler creates the project HTTP handler
func ProvideProjectHandler(projects *services.ProjectService, errorHandler *apperrors.ErrorHandler) *handlers.ProjectHandler {
	return handlers.NewProjectHandler(projects, errorHandler)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	definitions *handlers.DefinitionHandler,
	projects *handlers.ProjectHandler,
	errorHandler *apperrors.ErrorHandler,
	collector *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(definitions, projects, errorHandler, logger, rest.Options{
		AccessKeys: middleware.AccessKeys{
			FunctionKey: cfg.FunctionKey,
			AdminKey:    cfg.AdminKey,
		},
		EnableCORS:         cfg.EnableCORS,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Collector:          collector,
	})
}

// ProvideRotationScheduler creates the in-process rotation scheduler
func ProvideRotationScheduler(
	today *services.DefinitionOfTheDayService,
	cfg *config.Config,
	logger *zap.Logger,
) *scheduler.RotationScheduler {
	return scheduler.NewRotationScheduler(today, cfg.RotationSchedule, logger)
}
