// Package winprob provides a client for the game win probability service.
package winprob

import "errors"

var (
	// ErrServiceUnavailable indicates the win probability service is unreachable
	ErrServiceUnavailable = errors.New("win probability service unavailable")

	// ErrInvalidResponse indicates the prediction response is invalid
	ErrInvalidResponse = errors.New("invalid response from win probability service")

	// ErrInvalidProbability indicates the returned probabilities are out of range
	ErrInvalidProbability = errors.New("win probabilities must be in [0, 1] and sum to 1")
)
