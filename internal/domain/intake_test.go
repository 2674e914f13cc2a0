package domain

import (
	"encoding/json"
	"testing"
	"time"

	appErrors "github.com/Vero970/ProjFit/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var capturedAt = time.Date(2025, 3, 14, 15, 9, 26, 535897000, time.UTC)

func TestNewIntakeRecord_DerivesTotal(t *testing.T) {
	tests := []struct {
		name    string
		per100g float64
		grams   float64
		want    float64
	}{
		{"banana energy", 89, 150, 133.5},
		{"exact hundred", 52, 100, 52},
		{"fractional grams", 250, 12.5, 31.25},
		{"zero calorie food", 0, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := NewIntakeRecord("food", tt.grams, tt.per100g, capturedAt)
			require.NoError(t, err)

			assert.InDelta(t, tt.want, record.CaloriesTotal(), 1e-9)
			assert.Equal(t, tt.per100g*tt.grams/100, record.CaloriesTotal())
		})
	}
}

func TestNewIntakeRecord_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		food  string
		grams float64
	}{
		{"empty food", "", 100},
		{"zero grams", "rice", 0},
		{"negative grams", "rice", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := NewIntakeRecord(tt.food, tt.grams, 100, capturedAt)

			assert.Nil(t, record)
			assert.True(t, appErrors.IsKind(err, appErrors.KindInvalidRequest))
		})
	}
}

func TestIntakeRecord_MarshalJSON(t *testing.T) {
	record, err := NewIntakeRecord("banana", 150, 89, capturedAt)
	require.NoError(t, err)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Len(t, fields, 5)
	assert.Equal(t, "banana", fields["alimento"])
	assert.Equal(t, 150.0, fields["quantidade_g"])
	assert.Equal(t, 89.0, fields["calorias_por_100g"])
	assert.Equal(t, 133.5, fields["calorias_totais"])
	assert.Equal(t, "2025-03-14T15:09:26.535897Z", fields["timestamp"])
}

func TestIntakeRecord_TimestampIsUTC(t *testing.T) {
	local := time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*60*60))

	record, err := NewIntakeRecord("arroz", 100, 130, local)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, record.Timestamp().Location())
	assert.Equal(t, 15, record.Timestamp().Hour())
}

func TestIntakeRecord_Document(t *testing.T) {
	record, err := NewIntakeRecord("banana", 150, 89, capturedAt)
	require.NoError(t, err)

	doc, err := record.Document()
	require.NoError(t, err)

	assert.Contains(t, string(doc), "\n  \"alimento\": \"banana\"")
}

func TestBlobName(t *testing.T) {
	assert.Equal(t, "ingestao_1741964966.535897000.json", BlobName(capturedAt))
	assert.NotEqual(t, BlobName(capturedAt), BlobName(capturedAt.Add(time.Nanosecond)))
}
