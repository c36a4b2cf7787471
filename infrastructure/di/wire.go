//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"clouddictionary/application/services"
	"clouddictionary/infrastructure/config"

	"github.com/google/wire"
)

// InfrastructureSet provides clients, repositories and observability
var InfrastructureSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideTracer,
	ProvideCollector,
	ProvideCloudWatchMetrics,
	ProvideMetrics,
	ProvideEventPublisher,
	ProvideRandomSource,
	ProvideDefinitionRepository,
	ProvideDefinitionOfTheDayRepository,
	ProvideProjectRepository,
)

// ApplicationSet provides the services
var ApplicationSet = wire.NewSet(
	services.NewDefinitionService,
	services.NewDefinitionOfTheDayService,
	services.NewProjectService,
)

// InterfaceSet provides the HTTP layer and the scheduler
var InterfaceSet = wire.NewSet(
	ProvideErrorHandler,
	ProvideDefinitionHandler,
	ProvideProjectHandler,
	ProvideRouter,
	ProvideRotationScheduler,
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	InfrastructureSet,
	ApplicationSet,
	InterfaceSet,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
