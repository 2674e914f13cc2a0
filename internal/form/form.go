// Package form holds the submission rules shared by the web and terminal
// form clients: local validation, the single call to the intake handler,
// and how the outcome is rendered.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Vero970/ProjFit/internal/client"

	"github.com/go-playground/validator/v10"
)

const (
	// Title is shown at the top of every form client.
	Title = "CaloriFit – Cálculo de Ingestão Alimentar"

	DefaultGrams = 100
	MinGrams     = 1

	MsgBlankFood  = "Digite o nome do alimento!"
	MsgMinGrams   = "A quantidade deve ser de pelo menos 1 g."
	apiErrorLabel = "Erro da API: "
)

// Looker performs the remote intake calculation.
type Looker interface {
	Lookup(ctx context.Context, food string, grams float64) (*client.Result, error)
}

// Submission is what the user typed.
type Submission struct {
	Food  string
	Grams float64 `validate:"gte=1"`
}

// Outcome is the rendered result of a submission. Exactly one of Result or
// Error is set.
type Outcome struct {
	Result      *client.Result
	MetricLabel string
	MetricValue string
	Error       string
}

// Success reports whether the handler returned a record.
func (o Outcome) Success() bool {
	return o.Result != nil
}

var validate = validator.New()

// Validate applies the local checks. A failure here means no request is sent.
func Validate(s Submission) error {
	if strings.TrimSpace(s.Food) == "" {
		return errors.New(MsgBlankFood)
	}
	if err := validate.Struct(s); err != nil {
		return errors.New(MsgMinGrams)
	}
	return nil
}

// Submit validates s and, if it passes, calls the handler once.
func Submit(ctx context.Context, looker Looker, s Submission) Outcome {
	if err := Validate(s); err != nil {
		return Outcome{Error: err.Error()}
	}

	result, err := looker.Lookup(ctx, s.Food, s.Grams)
	if err != nil {
		return Outcome{Error: apiErrorLabel + err.Error()}
	}

	return Outcome{
		Result:      result,
		MetricLabel: MetricLabel(s.Grams, s.Food),
		MetricValue: MetricValue(result.CaloriasTotais),
	}
}

// MetricLabel names the headline metric for a submission.
func MetricLabel(grams float64, food string) string {
	return fmt.Sprintf("Calorias totais ingeridas (%sg de %s)", FormatGrams(grams), food)
}

// MetricValue formats total calories with two decimals.
func MetricValue(calories float64) string {
	return fmt.Sprintf("%.2f kcal", calories)
}

// FormatGrams prints whole quantities without a fractional part.
func FormatGrams(grams float64) string {
	return strconv.FormatFloat(grams, 'f', -1, 64)
}

// ParseGrams reads a quantity typed by the user. Empty input means the default.
func ParseGrams(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultGrams, nil
	}
	grams, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return 0, errors.New(MsgMinGrams)
	}
	return grams, nil
}
