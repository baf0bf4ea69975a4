package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRegistryIdempotent(t *testing.T) {
	first := InitRegistry()
	second := InitRegistry()

	assert.Same(t, first, second)
}

func TestRecordAnalysis(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordAnalysis(0.002)
	})
}

func TestRecordAnalysisError(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordAnalysisError()
	})
}

func TestRecordOutlierDetected(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordOutlierDetected()
	})
}

func TestRecordRecommendation(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordRecommendation("OVER")
		RecordRecommendation("UNDER")
	})
}

func TestRecordConfidenceLevel(t *testing.T) {
	InitRegistry()

	for _, level := range []string{"low", "medium", "high"} {
		assert.NotPanics(t, func() {
			RecordConfidenceLevel(level)
		})
	}
}

func TestRecordEdgeMagnitude(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name     string
		propType string
		edge     float64
	}{
		{"small edge", "points", 1.2},
		{"zero edge", "points", 0},
		{"large edge", "rebounds", 42.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordEdgeMagnitude(tt.propType, tt.edge)
			})
		})
	}
}

func TestRecordWinProbCacheLookup(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordWinProbCacheLookup(true)
		RecordWinProbCacheLookup(false)
	})
}

func TestUpdatePredictionAccuracy(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdatePredictionAccuracy("nba", 72.5)
		UpdatePredictionAccuracy("nfl", 0)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordAnalysis(0.001)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "propline_analyses_total")
}
