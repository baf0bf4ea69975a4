package engine

import (
	"math"

	"github.com/yourusername/propline/internal/models"
)

// Recommend gates the actionable signal: the edge direction is recommended
// only when the edge magnitude clears the minimum threshold and confidence
// is not low. Everything else in the result is diagnostic.
func Recommend(cfg Config, edgePercentage float64, direction models.EdgeDirection, confidence models.ConfidenceLevel) *models.EdgeDirection {
	if direction == models.EdgeDirectionNeutral {
		return nil
	}
	if math.Abs(edgePercentage) <= cfg.MinEdgeThreshold {
		return nil
	}
	if confidence == models.ConfidenceLow {
		return nil
	}
	play := direction
	return &play
}
