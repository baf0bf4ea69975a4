// Package api provides the HTTP API for prop analysis.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/propline/internal/config"
	"github.com/yourusername/propline/internal/repository"
	"github.com/yourusername/propline/internal/service"
	"github.com/yourusername/propline/internal/winprob"
)

// WinProbProvider fetches game win probabilities from the model service
type WinProbProvider interface {
	GetWinProbability(ctx context.Context, game winprob.GameContext) (*winprob.WinProbability, error)
}

// Server serves the prop analysis HTTP API
type Server struct {
	serviceName string
	version     string
	analysis    *service.AnalysisService
	predictions repository.PredictionRepository
	winProb     WinProbProvider
	sports      []string
	logger      *logrus.Logger
	server      *http.Server
	port        int
}

// NewServer creates a new API server
func NewServer(cfg *config.APIConfig, serviceName, version string, analysis *service.AnalysisService, predictions repository.PredictionRepository, winProb WinProbProvider, sports []string, logger *logrus.Logger) *Server {
	s := &Server{
		serviceName: serviceName,
		version:     version,
		analysis:    analysis,
		predictions: predictions,
		winProb:     winProb,
		sports:      sports,
		logger:      logger,
		port:        cfg.Port,
	}

	s.server = &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      s.routes(cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// routes builds the router with middleware and all API endpoints
func (s *Server) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleRoot)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/analyze/batch", s.handleAnalyzeBatch)
		r.Post("/predict", s.handlePredict)
		r.Get("/methodology", s.handleMethodology)
		r.Get("/sports", s.handleSports)
		r.Get("/accuracy/{sport}", s.handleAccuracy)
		r.Get("/players/{id}/projections", s.handlePlayerProjections)
	})

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	return c.Handler(r)
}

// requestLogger logs each request with method, path, status and duration
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"request_id":  middleware.GetReqID(r.Context()),
		}).Info("API request")
	})
}

// Handler exposes the configured handler for testing
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the server until it is shut down
func (s *Server) Start() error {
	s.logger.WithField("port", s.port).Info("API server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("API server shutting down")
	return s.server.Shutdown(ctx)
}
