package handlers

import (
	"context"
	"net/http"

	"github.com/Vero970/ProjFit/internal/middleware"
	"github.com/Vero970/ProjFit/internal/service/intake"
	appErrors "github.com/Vero970/ProjFit/pkg/errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// IntakeService is the part of the intake service the handler needs.
type IntakeService interface {
	ComputeIntake(ctx context.Context, foodName, quantityGrams string) (*intake.Result, error)
}

// IntakeQuery holds the raw query parameters. Quantity is kept as text so
// the service decides how an unparseable value is reported.
type IntakeQuery struct {
	Food     string `validate:"required"`
	Quantity string `validate:"required"`
}

// IntakeHandler handles intake calculation requests
type IntakeHandler struct {
	service  IntakeService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(service IntakeService, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// ComputeIntake handles GET /api/intake?alimento=<food>&quantidade=<grams>
func (h *IntakeHandler) ComputeIntake(w http.ResponseWriter, r *http.Request) {
	query := IntakeQuery{
		Food:     r.URL.Query().Get("alimento"),
		Quantity: r.URL.Query().Get("quantidade"),
	}
	if err := h.validate.Struct(query); err != nil {
		h.writeError(w, r, appErrors.NewInvalidRequest(intake.MsgMissingParams))
		return
	}

	result, err := h.service.ComputeIntake(r.Context(), query.Food, query.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Document); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}

// writeError renders any error as a plain-text body with the status of its kind.
func (h *IntakeHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := appErrors.KindOf(err)
	status := kind.HTTPStatus()

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Intake request failed", fields...)
	} else {
		h.logger.Info("Intake request rejected", fields...)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(appErrors.Message(err)))
}
