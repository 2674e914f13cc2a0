package form

import (
	"context"
	"errors"
	"testing"

	"github.com/Vero970/ProjFit/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLooker struct {
	mock.Mock
}

func (m *mockLooker) Lookup(ctx context.Context, food string, grams float64) (*client.Result, error) {
	args := m.Called(ctx, food, grams)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Result), args.Error(1)
}

func TestSubmit_BlankFoodNeverCalls(t *testing.T) {
	for _, food := range []string{"", " ", "\t\n"} {
		looker := new(mockLooker)

		outcome := Submit(context.Background(), looker, Submission{Food: food, Grams: 100})

		assert.False(t, outcome.Success())
		assert.Equal(t, MsgBlankFood, outcome.Error)
		looker.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestSubmit_BelowMinimumNeverCalls(t *testing.T) {
	looker := new(mockLooker)

	outcome := Submit(context.Background(), looker, Submission{Food: "banana", Grams: 0.5})

	assert.Equal(t, MsgMinGrams, outcome.Error)
	looker.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_SuccessRendersMetric(t *testing.T) {
	tests := []struct {
		total    float64
		expected string
	}{
		{133.5, "133.50 kcal"},
		{89, "89.00 kcal"},
		{17.416, "17.42 kcal"},
		{0, "0.00 kcal"},
	}

	for _, tt := range tests {
		looker := new(mockLooker)
		result := &client.Result{Alimento: "banana", QuantidadeG: 150, CaloriasPor100g: 89, CaloriasTotais: tt.total}
		looker.On("Lookup", mock.Anything, "banana", 150.0).Return(result, nil).Once()

		outcome := Submit(context.Background(), looker, Submission{Food: "banana", Grams: 150})

		require.True(t, outcome.Success())
		assert.Empty(t, outcome.Error)
		assert.Equal(t, "Calorias totais ingeridas (150g de banana)", outcome.MetricLabel)
		assert.Equal(t, tt.expected, outcome.MetricValue)
		assert.Same(t, result, outcome.Result)
		looker.AssertExpectations(t)
	}
}

func TestSubmit_APIErrorShowsRawBody(t *testing.T) {
	looker := new(mockLooker)
	apiErr := &client.APIError{StatusCode: 404, Body: "Alimento 'xyzzy' não encontrado na USDA."}
	looker.On("Lookup", mock.Anything, "xyzzy", 100.0).Return(nil, apiErr).Once()

	outcome := Submit(context.Background(), looker, Submission{Food: "xyzzy", Grams: 100})

	assert.False(t, outcome.Success())
	assert.Equal(t, "Erro da API: Alimento 'xyzzy' não encontrado na USDA.", outcome.Error)
	looker.AssertNumberOfCalls(t, "Lookup", 1)
}

func TestSubmit_TransportError(t *testing.T) {
	looker := new(mockLooker)
	looker.On("Lookup", mock.Anything, "banana", 100.0).Return(nil, errors.New("connection refused")).Once()

	outcome := Submit(context.Background(), looker, Submission{Food: "banana", Grams: 100})

	assert.Equal(t, "Erro da API: connection refused", outcome.Error)
}

func TestParseGrams(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
		wantErr  bool
	}{
		{"", DefaultGrams, false},
		{"150", 150, false},
		{" 12.5 ", 12.5, false},
		{"12,5", 12.5, false},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			grams, err := ParseGrams(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, grams)
		})
	}
}

func TestFormatGrams(t *testing.T) {
	assert.Equal(t, "100", FormatGrams(100))
	assert.Equal(t, "12.5", FormatGrams(12.5))
}
