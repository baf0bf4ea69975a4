package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/propline/internal/models"
)

// TestAssessConfidence tests the deterministic confidence policy
func TestAssessConfidence(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		sampleSize  int
		wasOutlier  bool
		trendAgrees bool
		edge        float64
		want        models.ConfidenceLevel
	}{
		{"small sample is low", 4, false, true, 10.0, models.ConfidenceLow},
		{"outlier without agreement is low", 12, true, false, 10.0, models.ConfidenceLow},
		{"outlier with agreement is medium", 12, true, true, 10.0, models.ConfidenceMedium},
		{"all signals aligned is high", 12, false, true, 9.0, models.ConfidenceHigh},
		{"edge exactly at high threshold is high", 12, false, true, 8.0, models.ConfidenceHigh},
		{"negative edge magnitude counts", 12, false, true, -9.0, models.ConfidenceHigh},
		{"edge below high threshold is medium", 12, false, true, 7.9, models.ConfidenceMedium},
		{"sample below high bar is medium", 8, false, true, 10.0, models.ConfidenceMedium},
		{"disagreeing trend caps at medium", 12, false, false, 10.0, models.ConfidenceMedium},
		{"sample at minimum is not low", 5, false, false, 1.0, models.ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseline := models.BaselineStatistics{SampleSize: tt.sampleSize}
			form := models.RecentForm{WasOutlier: tt.wasOutlier}
			got := AssessConfidence(cfg, baseline, form, tt.trendAgrees, tt.edge)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestConfigValidate tests the weight sum invariant at construction
func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.RecentFormWeight = 0.30
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWeights)

	cfg = DefaultConfig()
	cfg.RecentFormGames = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.StdDevThreshold = 0
	assert.Error(t, cfg.Validate())
}
