// Package engine implements the anti-recency projection pipeline.
package engine

import "errors"

var (
	// ErrInsufficientData indicates the game value series is empty
	ErrInsufficientData = errors.New("insufficient data: empty game value series")

	// ErrInvalidLine indicates the prop line is zero or negative
	ErrInvalidLine = errors.New("invalid prop line: must be positive")

	// ErrInvalidTier indicates the opponent tier is outside the 1-5 ordinal range
	ErrInvalidTier = errors.New("invalid opponent tier: must be between 1 and 5")

	// ErrInvalidWeights indicates the weighting config does not sum to 1.0
	ErrInvalidWeights = errors.New("invalid weighting config: weights must sum to 1.0")
)
