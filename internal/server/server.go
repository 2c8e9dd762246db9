// Package server exposes the recommendation engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookscout/internal/logging"
	"bookscout/internal/model"
	"bookscout/internal/stats"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Recommender is the engine surface the server depends on.
type Recommender interface {
	Recommend(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResponse, error)
}

// Server holds the HTTP API's dependencies.
type Server struct {
	engine  Recommender
	tracker *stats.Tracker
	metrics *Metrics
	router  chi.Router
}

// New wires up the router. The tracker and metrics may not be nil.
func New(engine Recommender, tracker *stats.Tracker, metrics *Metrics) *Server {
	s := &Server{
		engine:  engine,
		tracker: tracker,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.timing)

	r.Route("/api", func(r chi.Router) {
		r.Post("/recommendations", s.handleRecommendations)
		r.Get("/stats", s.handleUserStats)
		r.Get("/stats/global", s.handleGlobalStats)
		r.Get("/health", s.handleHealth)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// timing records request latency and exposes it as X-Process-Time, in
// seconds, the way the original service's clients expect.
func (s *Server) timing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tw := &timedWriter{ResponseWriter: w, start: start}

		next.ServeHTTP(tw, r)

		elapsed := time.Since(start)
		s.metrics.IncRequest(r.URL.Path)
		s.metrics.ObserveDuration(elapsed)
	})
}

// timedWriter sets the X-Process-Time header just before the status line
// is written, when the elapsed time is actually known.
type timedWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
}

func (w *timedWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.6f", time.Since(w.start).Seconds()))
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timedWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req model.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.IncError("bad_request")
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.metrics.IncError("validation")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	resp, err := s.engine.Recommend(r.Context(), &req)
	if err != nil {
		s.metrics.IncError("engine")
		logging.Error("recommendation failed", "user", req.UserID, "term", req.SearchTerm, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}

	// Stats recording is off the request path.
	elapsed := time.Since(start).Seconds()
	go s.tracker.Record(req.UserID, req.SearchTerm, elapsed)

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	userStats, ok := s.tracker.UserStats(userID)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("no stats for user %q", userID))
		return
	}
	respondJSON(w, http.StatusOK, userStats)
}

func (s *Server) handleGlobalStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.tracker.GlobalStats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, model.HealthResponse{
		Status:        "ok",
		Version:       Version,
		Timestamp:     time.Now(),
		UptimeSeconds: s.tracker.Uptime().Seconds(),
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, model.ErrorResponse{
		Error:     msg,
		Code:      status,
		Timestamp: time.Now(),
	})
}
