package fooddata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Vero970/ProjFit/internal/config"
	appErrors "github.com/Vero970/ProjFit/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const bananaResponse = `{
  "totalHits": 2,
  "foods": [
    {
      "fdcId": 1105314,
      "description": "Bananas, ripe and slightly ripe, raw",
      "foodNutrients": [
        {"nutrientId": 1003, "nutrientName": "Protein", "unitName": "G", "value": 0.74},
        {"nutrientId": 1008, "nutrientName": "Energy", "unitName": "KCAL", "value": 89}
      ]
    },
    {
      "fdcId": 2,
      "description": "Banana chips",
      "foodNutrients": [{"nutrientName": "Energy", "unitName": "KCAL", "value": 519}]
    }
  ]
}`

func kcal(v float64) *float64 { return &v }

func testConfig(baseURL string) config.USDA {
	return config.USDA{
		APIKey:  "secret",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}
}

func TestClient_Search(t *testing.T) {
	var gotPath, gotKey, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bananaResponse))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL+"/"), zap.NewNop())

	result, err := client.Search(context.Background(), "banana prata")
	require.NoError(t, err)

	assert.Equal(t, "/foods/search", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "banana prata", gotQuery)
	require.Len(t, result.Foods, 2)
	assert.Equal(t, "Bananas, ripe and slightly ripe, raw", result.Foods[0].Description)
	require.NotNil(t, result.Foods[0].FoodNutrients[1].Value)
	assert.Equal(t, 89.0, *result.Foods[0].FoodNutrients[1].Value)
}

func TestClient_Search_EmptyFoods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalHits": 0, "foods": []}`))
	}))
	defer server.Close()

	result, err := NewClient(testConfig(server.URL), zap.NewNop()).Search(context.Background(), "xyz")

	require.NoError(t, err)
	assert.Empty(t, result.Foods)
}

func TestClient_Search_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":{"code":"API_KEY_INVALID"}}`))
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>oops</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			result, err := NewClient(testConfig(server.URL), zap.NewNop()).Search(context.Background(), "banana")

			assert.Nil(t, result)
			assert.True(t, appErrors.IsKind(err, appErrors.KindUpstreamUnavailable), "got %v", err)
		})
	}
}

func TestClient_Search_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(testConfig(url), zap.NewNop()).Search(context.Background(), "banana")

	assert.True(t, appErrors.IsKind(err, appErrors.KindUpstreamUnavailable))
}

func TestClient_Search_CircuitBreakerOpens(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.EnableCircuitBreaker = true
	client := NewClient(cfg, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := client.Search(context.Background(), "banana")
		require.Error(t, err)
	}

	_, err := client.Search(context.Background(), "banana")

	assert.True(t, appErrors.IsKind(err, appErrors.KindUpstreamUnavailable))
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls), "open breaker must not reach upstream")
}

func TestClient_Search_CancelledRequestsKeepCircuitClosed(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(bananaResponse))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.EnableCircuitBreaker = true
	client := NewClient(cfg, zap.NewNop())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 10; i++ {
		_, err := client.Search(cancelled, "banana")
		require.Error(t, err)
	}

	result, err := client.Search(context.Background(), "banana")

	require.NoError(t, err)
	assert.Len(t, result.Foods, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFood_CaloriesPer100g(t *testing.T) {
	tests := []struct {
		name      string
		nutrients []Nutrient
		want      float64
		found     bool
	}{
		{
			name:      "energy literal",
			nutrients: []Nutrient{{NutrientName: "Energy", Value: kcal(89)}},
			want:      89,
			found:     true,
		},
		{
			name:      "calories alias upper case",
			nutrients: []Nutrient{{NutrientName: "CALORIES", Value: kcal(120)}},
			want:      120,
			found:     true,
		},
		{
			name:      "energy kcal alias",
			nutrients: []Nutrient{{NutrientName: "Energy (kcal)", Value: kcal(250)}},
			want:      250,
			found:     true,
		},
		{
			name: "first alias wins",
			nutrients: []Nutrient{
				{NutrientName: "Protein", Value: kcal(1)},
				{NutrientName: "Energy", Value: kcal(372)},
				{NutrientName: "Energy", Value: kcal(89)},
			},
			want:  372,
			found: true,
		},
		{
			name: "no alias",
			nutrients: []Nutrient{
				{NutrientName: "Protein", Value: kcal(1)},
				{NutrientName: "Energy (Atwater General Factors)", Value: kcal(90)},
			},
			found: false,
		},
		{
			name:      "null value on first match",
			nutrients: []Nutrient{{NutrientName: "Energy"}, {NutrientName: "Calories", Value: kcal(89)}},
			found:     false,
		},
		{
			name:  "empty list",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Food{FoodNutrients: tt.nutrients}.CaloriesPer100g()

			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
