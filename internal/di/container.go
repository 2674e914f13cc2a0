// Package di assembles the intake handler's dependencies from configuration.
package di

import (
	"context"
	"fmt"

	"github.com/Vero970/ProjFit/internal/config"
	"github.com/Vero970/ProjFit/internal/fooddata"
	"github.com/Vero970/ProjFit/internal/interfaces/http/rest"
	"github.com/Vero970/ProjFit/internal/logger"
	"github.com/Vero970/ProjFit/internal/observability"
	"github.com/Vero970/ProjFit/internal/service/intake"
	"github.com/Vero970/ProjFit/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Container holds every long-lived component of the intake handler.
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Metrics       *observability.Collector
	Foods         fooddata.Searcher
	Store         storage.BlobStore
	IntakeService *intake.Service

	shutdownTracing func(context.Context) error
}

// InitializeContainer builds the container. Nothing here performs I/O
// against the food database or the blob store.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	shutdown, err := observability.InitTracing(ctx, cfg.Tracing, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	metrics := observability.NewCollector("calorifit")
	foods := fooddata.NewClient(cfg.USDA, log)

	c := &Container{
		Config:          cfg,
		Logger:          log,
		Metrics:         metrics,
		Foods:           foods,
		Store:           store,
		IntakeService:   intake.NewService(foods, store, log, intake.WithMetrics(metrics)),
		shutdownTracing: shutdown,
	}

	log.Info("Container initialized",
		zap.String("environment", cfg.Environment),
		zap.String("storage_provider", cfg.Storage.Provider),
		zap.String("container", cfg.Storage.Container),
		zap.Bool("tracing", cfg.Tracing.Enabled),
	)
	return c, nil
}

// Router returns the chi router serving the intake endpoints. withMetrics
// mounts /metrics, which only makes sense for a long-running server.
func (c *Container) Router(withMetrics bool) *chi.Mux {
	var metrics *observability.Collector
	if withMetrics {
		metrics = c.Metrics
	}
	return rest.NewRouter(c.IntakeService, metrics, c.Config.Environment, c.Logger).Setup().(*chi.Mux)
}

// Shutdown flushes traces and logs.
func (c *Container) Shutdown(ctx context.Context) error {
	var firstErr error
	if c.shutdownTracing != nil {
		if err := c.shutdownTracing(ctx); err != nil {
			firstErr = err
		}
	}
	_ = c.Logger.Sync()
	return firstErr
}
