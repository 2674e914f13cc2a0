// Package intake implements the intake calculation: resolve calories per
// 100g upstream, derive the total, persist the record, return it.
package intake

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Vero970/ProjFit/internal/domain"
	"github.com/Vero970/ProjFit/internal/fooddata"
	"github.com/Vero970/ProjFit/internal/observability"
	"github.com/Vero970/ProjFit/internal/storage"
	appErrors "github.com/Vero970/ProjFit/pkg/errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MsgMissingParams is returned when either query parameter is absent.
const MsgMissingParams = "Parâmetros obrigatórios: alimento, quantidade (g)"

// MsgNutrientNotFound is returned when the first match has no calorie entry.
const MsgNutrientNotFound = "Não foi possível encontrar calorias na USDA."

// Result is a computed and persisted intake.
type Result struct {
	Record *domain.IntakeRecord
	// BlobName is the key the record was written under.
	BlobName string
	// Document is the exact byte content written to the blob store.
	Document []byte
}

// Service computes intake records. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	foods   fooddata.Searcher
	store   storage.BlobStore
	metrics *observability.Collector
	logger  *zap.Logger
	now     func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics records business metrics on c.
func WithMetrics(c *observability.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// NewService creates a new intake service
func NewService(foods fooddata.Searcher, store storage.BlobStore, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		foods:  foods,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeIntake runs lookup, computation and persistence in sequence. The
// result is returned only after the blob write succeeds; any failure aborts
// the whole request with a tagged error.
func (s *Service) ComputeIntake(ctx context.Context, foodName, quantityGrams string) (*Result, error) {
	ctx, span := observability.Tracer().Start(ctx, "intake.compute",
		trace.WithAttributes(attribute.String("intake.food", foodName)))
	defer span.End()

	result, err := s.compute(ctx, foodName, quantityGrams)
	if err != nil {
		kind := appErrors.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		if s.metrics != nil {
			s.metrics.IntakeFailures.WithLabelValues(string(kind)).Inc()
		}
		s.logger.Warn("Intake computation failed",
			zap.String("food", foodName),
			zap.String("quantity", quantityGrams),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IntakesRecorded.Inc()
		s.metrics.CaloriesTotal.Observe(result.Record.CaloriesTotal())
	}
	s.logger.Info("Intake recorded",
		zap.String("food", result.Record.FoodName()),
		zap.Float64("quantity_g", result.Record.QuantityGrams()),
		zap.Float64("calories_total", result.Record.CaloriesTotal()),
		zap.String("blob", result.BlobName),
	)
	return result, nil
}

func (s *Service) compute(ctx context.Context, foodName, quantityGrams string) (*Result, error) {
	if foodName == "" || quantityGrams == "" {
		return nil, appErrors.NewInvalidRequest(MsgMissingParams)
	}

	// A non-numeric quantity stays on the 500 path, matching the behavior
	// clients already depend on.
	grams, err := strconv.ParseFloat(quantityGrams, 64)
	if err != nil {
		return nil, appErrors.NewUnexpected(fmt.Sprintf("quantidade inválida '%s'", quantityGrams), err)
	}
	if !(grams > 0) || math.IsInf(grams, 0) {
		return nil, appErrors.NewInvalidRequest(fmt.Sprintf("Quantidade deve ser um número positivo: %s", quantityGrams))
	}

	per100g, err := s.lookup(ctx, foodName)
	if err != nil {
		return nil, err
	}

	record, err := domain.NewIntakeRecord(foodName, grams, per100g, s.now())
	if err != nil {
		return nil, err
	}

	doc, err := record.Document()
	if err != nil {
		return nil, appErrors.NewUnexpected("failed to encode intake record", err)
	}

	name := domain.BlobName(s.now())
	if err := s.persist(ctx, name, doc); err != nil {
		return nil, err
	}

	return &Result{Record: record, BlobName: name, Document: doc}, nil
}

// lookup resolves calories per 100g from the first search hit.
func (s *Service) lookup(ctx context.Context, foodName string) (float64, error) {
	ctx, span := observability.Tracer().Start(ctx, "intake.lookup")
	defer span.End()

	start := time.Now()
	result, err := s.foods.Search(ctx, foodName)
	if s.metrics != nil {
		s.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if _, ok := appErrors.As(err); !ok {
			err = appErrors.NewUpstreamUnavailable("usda search failed", err)
		}
		return 0, err
	}

	if result == nil || len(result.Foods) == 0 {
		return 0, appErrors.NewNotFound(fmt.Sprintf("Alimento '%s' não encontrado na USDA.", foodName))
	}

	// First result wins; there is no ranking.
	food := result.Foods[0]
	span.SetAttributes(
		attribute.Int("usda.fdc_id", food.FDCID),
		attribute.String("usda.description", food.Description),
	)

	per100g, ok := food.CaloriesPer100g()
	if !ok {
		return 0, appErrors.NewNutrientNotFound(MsgNutrientNotFound)
	}
	return per100g, nil
}

func (s *Service) persist(ctx context.Context, name string, doc []byte) error {
	ctx, span := observability.Tracer().Start(ctx, "intake.persist",
		trace.WithAttributes(attribute.String("blob.name", name)))
	defer span.End()

	if err := s.store.EnsureContainer(ctx); err != nil {
		s.countWrite("failure")
		return asPersistenceFailure("failed to ensure blob container", err)
	}
	if err := s.store.Put(ctx, name, doc, "application/json"); err != nil {
		s.countWrite("failure")
		return asPersistenceFailure("failed to upload blob", err)
	}
	s.countWrite("success")
	return nil
}

func (s *Service) countWrite(status string) {
	if s.metrics != nil {
		s.metrics.BlobWrites.WithLabelValues(status).Inc()
	}
}

func asPersistenceFailure(message string, err error) error {
	if _, ok := appErrors.As(err); ok {
		return err
	}
	return appErrors.NewPersistenceFailure(message, err)
}
