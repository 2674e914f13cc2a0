// Package rest wires the intake handler's HTTP surface. The same router is
// served by the Lambda adapter and by the local server.
package rest

import (
	"net/http"

	"github.com/Vero970/ProjFit/internal/interfaces/http/rest/handlers"
	"github.com/Vero970/ProjFit/internal/middleware"
	"github.com/Vero970/ProjFit/internal/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	intake      handlers.IntakeService
	metrics     *observability.Collector
	environment string
	logger      *zap.Logger
}

// NewRouter creates a new router instance. metrics may be nil, in which case
// /metrics is not mounted.
func NewRouter(
	intake handlers.IntakeService,
	metrics *observability.Collector,
	environment string,
	logger *zap.Logger,
) *Router {
	return &Router{
		intake:      intake,
		metrics:     metrics,
		environment: environment,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(rt.logger))
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(rt.metrics.Middleware)
	}

	// The form client may run in a browser on any origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	router.Get("/health", handlers.NewHealthHandler(rt.environment).Check)
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	intakeHandler := handlers.NewIntakeHandler(rt.intake, rt.logger)
	router.Get("/api/intake", intakeHandler.ComputeIntake)
	// A bare function URL hits the root path.
	router.Get("/", intakeHandler.ComputeIntake)

	return router
}
