package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/propline/internal/engine"
	"github.com/yourusername/propline/internal/service"
	"github.com/yourusername/propline/internal/winprob"
)

// maxBatchSize bounds a single batch request
const maxBatchSize = 100

// handleRoot describes the API surface
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": s.serviceName,
		"version": s.version,
		"endpoints": []string{
			"POST /api/v1/analyze",
			"POST /api/v1/analyze/batch",
			"POST /api/v1/predict",
			"GET /api/v1/methodology",
			"GET /api/v1/sports",
			"GET /api/v1/accuracy/{sport}",
			"GET /api/v1/players/{id}/projections",
		},
	})
}

// handleAnalyze runs a single prop analysis
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req service.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.analysis.AnalyzeProp(r.Context(), req)
	if err != nil {
		respondError(w, analysisStatus(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleAnalyzeBatch runs multiple independent prop analyses
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []service.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(reqs) == 0 {
		respondError(w, http.StatusBadRequest, "batch must contain at least one request")
		return
	}
	if len(reqs) > maxBatchSize {
		respondError(w, http.StatusBadRequest, "batch size exceeds maximum of "+strconv.Itoa(maxBatchSize))
		return
	}

	items, err := s.analysis.AnalyzeBatch(r.Context(), reqs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(items),
		"results": items,
	})
}

// predictRequest is the body for win probability requests
type predictRequest struct {
	Sport    string `json:"sport"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	GameDate string `json:"game_date"`
}

// handlePredict proxies a game win probability request to the model service
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if s.winProb == nil {
		respondError(w, http.StatusServiceUnavailable, "win probability service not configured")
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Sport == "" || req.HomeTeam == "" || req.AwayTeam == "" {
		respondError(w, http.StatusBadRequest, "sport, home_team and away_team are required")
		return
	}

	gameDate, err := time.Parse("2006-01-02", req.GameDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "game_date must be YYYY-MM-DD")
		return
	}

	prediction, err := s.winProb.GetWinProbability(r.Context(), winprob.GameContext{
		Sport:    req.Sport,
		HomeTeam: req.HomeTeam,
		AwayTeam: req.AwayTeam,
		GameDate: gameDate,
	})
	if err != nil {
		if errors.Is(err, winprob.ErrServiceUnavailable) {
			respondError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, prediction)
}

// handleSports lists the sports the service tracks
func (s *Server) handleSports(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sports": s.sports,
	})
}

// handleMethodology exposes the weighting methodology
func (s *Server) handleMethodology(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.analysis.Methodology())
}

// handleAccuracy returns the rolling prediction accuracy for a sport
func (s *Server) handleAccuracy(w http.ResponseWriter, r *http.Request) {
	sport := chi.URLParam(r, "sport")

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil || days <= 0 || days > 365 {
			respondError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		start = end.AddDate(0, 0, -days)
	}

	summary, err := s.predictions.GetAccuracySummary(r.Context(), sport, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// handlePlayerProjections returns recently persisted projections for a player
func (s *Server) handlePlayerProjections(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || playerID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	propType := r.URL.Query().Get("prop_type")
	if propType == "" {
		respondError(w, http.StatusBadRequest, "prop_type query parameter is required")
		return
	}

	limit := 20
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit <= 0 || limit > 200 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
	}

	records, err := s.analysis.GetRecentProjections(r.Context(), playerID, propType, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player_id":   playerID,
		"prop_type":   propType,
		"count":       len(records),
		"projections": records,
	})
}

// analysisStatus maps engine errors to HTTP status codes. Bad inputs are the
// caller's fault, everything else is ours.
func analysisStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidLine),
		errors.Is(err, engine.ErrInsufficientData),
		errors.Is(err, engine.ErrInvalidTier):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
