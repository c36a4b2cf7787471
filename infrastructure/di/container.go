package di

import (
	"clouddictionary/application/ports"
	"clouddictionary/application/services"
	"clouddictionary/infrastructure/config"
	"clouddictionary/infrastructure/scheduler"
	"clouddictionary/interfaces/http/rest"
	"clouddictionary/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config                    *config.Config
	Logger                    *zap.Logger
	DefinitionRepository      ports.DefinitionRepository
	DefinitionService         *services.DefinitionService
	DefinitionOfTheDayService *services.DefinitionOfTheDayService
	ProjectService            *services.ProjectService
	Collector                 *observability.Collector
	Router                    *rest.Router
	Scheduler                 *scheduler.RotationScheduler
}

// Shutdown stops the scheduler and flushes the logger
func (c *Container) Shutdown() {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	_ = c.Logger.Sync()
}
