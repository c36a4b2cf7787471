package rest

import (
	"net/http"

	"clouddictionary/api"
	"clouddictionary/interfaces/http/rest/handlers"
	"clouddictionary/interfaces/http/rest/middleware"
	apperrors "clouddictionary/pkg/errors"
	"clouddictionary/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options tunes the router. The zero value serves every route without
// access keys, CORS or a metrics endpoint.
type Options struct {
	AccessKeys         middleware.AccessKeys
	EnableCORS         bool
	CORSAllowedOrigins []string
	// Collector, when set, records request metrics and is served at /metrics.
	Collector *observability.Collector
}

// Router creates and configures the HTTP router
type Router struct {
	definitions  *handlers.DefinitionHandler
	projects     *handlers.ProjectHandler
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
	options      Options
}

// NewRouter creates a new router instance
func NewRouter(
	definitions *handlers.DefinitionHandler,
	projects *handlers.ProjectHandler,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
	options Options,
) *Router {
	return &Router{
		definitions:  definitions,
		projects:     projects,
		errorHandler: errorHandler,
		logger:       logger,
		options:      options,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errorHandler.Middleware)
	if rt.options.Collector != nil {
		router.Use(middleware.Metrics(rt.options.Collector))
	}

	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.options.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", middleware.FunctionKeyHeader},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Get("/openapi", api.Handler())
	if rt.options.Collector != nil {
		router.Handle("/metrics", rt.options.Collector.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		// Open
		r.Get("/GetAllDefinitions", rt.definitions.GetAll)
		r.Get("/GetDefinitionOfTheDay", rt.definitions.DefinitionOfTheDay)

		// Function key
		r.Group(func(r chi.Router) {
			r.Use(rt.requireTier(middleware.TierRestricted))
			r.Get("/GetDefinitionById", rt.definitions.GetByID)
			r.Get("/GetDefinitionByWord", rt.definitions.GetByWord)
			r.Get("/GetDefinitionsByTag", rt.definitions.GetByTag)
			r.Get("/GetDefinitionsBySearch", rt.definitions.Search)
			r.Get("/GetRandomDefinition", rt.definitions.GetRandom)
			r.Get("/GetProjectByWord", rt.projects.GetByWord)
		})

		// Admin key
		r.Group(func(r chi.Router) {
			r.Use(rt.requireTier(middleware.TierAdmin))
			r.Post("/CreateDefinition", rt.definitions.Create)
			r.Put("/UpdateDefinition/{id}", rt.definitions.UpdateByID)
			r.Put("/UpdateDefinition", rt.definitions.UpdateByWord)
			r.Delete("/DeleteDefinition", rt.definitions.Delete)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.Handle(w, r, apperrors.NewNotFoundError("Route not found."))
	})

	return router
}

func (rt *Router) requireTier(tier middleware.Tier) func(http.Handler) http.Handler {
	return middleware.RequireTier(rt.options.AccessKeys, tier, rt.errorHandler)
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, _ *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
