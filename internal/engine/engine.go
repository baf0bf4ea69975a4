package engine

import (
	"fmt"
	"sync"

	"github.com/yourusername/propline/internal/models"
)

// Engine evaluates prop analysis requests with the anti-recency weighted
// methodology. The full-season baseline is the primary anchor; recent
// performance only moves the projection within the configured weights, and
// outlier windows are regressed back to the baseline.
//
// The engine is a stateless pipeline: it holds only the immutable config
// snapshot, performs no I/O, and never logs or retries. Identical inputs
// always produce identical output.
type Engine struct {
	cfg Config
}

// New creates a projection engine from a validated config
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// BatchOutcome is one result-or-error slot of a batch analysis, positioned
// at the same index as its request.
type BatchOutcome struct {
	Result *models.ProjectionResult
	Err    error
}

// AnalyzeProp runs the full pipeline for a single request
func (e *Engine) AnalyzeProp(req models.PropRequest) (*models.ProjectionResult, error) {
	if req.PropLine <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidLine, req.PropLine)
	}

	baseline, err := CalculateBaseline(req.GameValues, e.cfg.MinSampleSize)
	if err != nil {
		return nil, err
	}

	form := AssessRecentForm(req.GameValues, e.cfg.RecentFormGames, baseline, e.cfg.StdDevThreshold)
	trend := ValidateTrend(req.GameValues, e.cfg.TrendGames, baseline)

	projection, applied, err := Synthesize(e.cfg, baseline, form, trend, req.MatchupAverage, req.OpponentTier)
	if err != nil {
		return nil, err
	}

	edge, direction, err := CalculateEdge(projection, req.PropLine)
	if err != nil {
		return nil, err
	}

	agrees := TrendAgrees(trend, form, baseline)
	confidence := AssessConfidence(e.cfg, baseline, form, agrees, edge)

	return &models.ProjectionResult{
		PlayerID:        req.PlayerID,
		PropType:        req.PropType,
		PropLine:        req.PropLine,
		SeasonBaseline:  baseline.Mean,
		FinalProjection: projection,
		EdgePercentage:  edge,
		EdgeDirection:   direction,
		ConfidenceLevel: confidence,
		RecommendedPlay: Recommend(e.cfg, edge, direction, confidence),
		Floor:           baseline.Floor,
		Ceiling:         baseline.Ceiling,
		WeightsApplied:  applied,
		WasOutlier:      form.WasOutlier,
		TrendDirection:  trend.Direction,
	}, nil
}

// BatchAnalyze evaluates independent requests concurrently. The returned
// slice is index-aligned with the input; a failure on one item never aborts
// the rest of the batch.
func (e *Engine) BatchAnalyze(reqs []models.PropRequest) []BatchOutcome {
	outcomes := make([]BatchOutcome, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req models.PropRequest) {
			defer wg.Done()
			result, err := e.AnalyzeProp(req)
			outcomes[i] = BatchOutcome{Result: result, Err: err}
		}(i, req)
	}
	wg.Wait()

	return outcomes
}

// Methodology returns a read-only snapshot of the weighting methodology.
// The returned map is a copy; mutating it does not affect the engine.
func (e *Engine) Methodology() models.MethodologySnapshot {
	return models.MethodologySnapshot{
		Weights:          e.cfg.weights(),
		RecentFormGames:  e.cfg.RecentFormGames,
		TrendGames:       e.cfg.TrendGames,
		MinSampleSize:    e.cfg.MinSampleSize,
		StdDevThreshold:  e.cfg.StdDevThreshold,
		MinEdgeThreshold: e.cfg.MinEdgeThreshold,
	}
}
