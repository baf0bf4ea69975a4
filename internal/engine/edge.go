package engine

import (
	"fmt"

	"github.com/yourusername/propline/internal/models"
)

// CalculateEdge converts a projection against the proposed line into a
// percentage edge and direction. A non-positive line cannot express a
// percentage edge and is rejected.
func CalculateEdge(projection, propLine float64) (float64, models.EdgeDirection, error) {
	if propLine <= 0 {
		return 0, "", fmt.Errorf("%w: got %g", ErrInvalidLine, propLine)
	}

	edge := (projection - propLine) / propLine * 100

	direction := models.EdgeDirectionNeutral
	switch {
	case edge > 0:
		direction = models.EdgeDirectionOver
	case edge < 0:
		direction = models.EdgeDirectionUnder
	}

	return edge, direction, nil
}
