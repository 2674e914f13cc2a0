// Package domain holds the Intake Record, the single entity this service
// computes and persists.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	appErrors "github.com/Vero970/ProjFit/pkg/errors"
)

// TimestampLayout is the ISO-8601 UTC layout used for the record timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// BlobPrefix prefixes every persisted record key.
const BlobPrefix = "ingestao_"

// IntakeRecord is the computed result of one food/quantity calculation.
// Fields are unexported so the total can only come from NewIntakeRecord.
type IntakeRecord struct {
	foodName        string
	quantityGrams   float64
	caloriesPer100g float64
	caloriesTotal   float64
	timestamp       time.Time
}

// NewIntakeRecord builds a record and derives the calorie total.
func NewIntakeRecord(foodName string, quantityGrams, caloriesPer100g float64, capturedAt time.Time) (*IntakeRecord, error) {
	if foodName == "" {
		return nil, appErrors.NewInvalidRequest("food name is required")
	}
	if !(quantityGrams > 0) {
		return nil, appErrors.NewInvalidRequest(fmt.Sprintf("quantidade deve ser positiva: %v", quantityGrams))
	}

	return &IntakeRecord{
		foodName:        foodName,
		quantityGrams:   quantityGrams,
		caloriesPer100g: caloriesPer100g,
		caloriesTotal:   TotalCalories(caloriesPer100g, quantityGrams),
		timestamp:       capturedAt.UTC(),
	}, nil
}

// TotalCalories converts a per-100g figure into the total for grams.
func TotalCalories(caloriesPer100g, grams float64) float64 {
	return caloriesPer100g * grams / 100
}

func (r *IntakeRecord) FoodName() string         { return r.foodName }
func (r *IntakeRecord) QuantityGrams() float64   { return r.quantityGrams }
func (r *IntakeRecord) CaloriesPer100g() float64 { return r.caloriesPer100g }
func (r *IntakeRecord) CaloriesTotal() float64   { return r.caloriesTotal }
func (r *IntakeRecord) Timestamp() time.Time     { return r.timestamp }

// recordJSON is the wire shape. Field order matches the response contract.
type recordJSON struct {
	FoodName        string  `json:"alimento"`
	QuantityGrams   float64 `json:"quantidade_g"`
	CaloriesPer100g float64 `json:"calorias_por_100g"`
	CaloriesTotal   float64 `json:"calorias_totais"`
	Timestamp       string  `json:"timestamp"`
}

// MarshalJSON emits exactly the five documented fields.
func (r *IntakeRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		FoodName:        r.foodName,
		QuantityGrams:   r.quantityGrams,
		CaloriesPer100g: r.caloriesPer100g,
		CaloriesTotal:   r.caloriesTotal,
		Timestamp:       r.timestamp.Format(TimestampLayout),
	})
}

// Document renders the record as the indented JSON document that is both
// stored and returned to the caller.
func (r *IntakeRecord) Document() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// BlobName derives a storage key from a high-resolution timestamp. Two
// writes in the same nanosecond share a key and the last one wins.
func BlobName(at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("%s%d.%09d.json", BlobPrefix, at.Unix(), at.Nanosecond())
}
