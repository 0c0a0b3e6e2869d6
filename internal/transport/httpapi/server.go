package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/flight-insight/flightinsight/internal/domain"
	healthuc "github.com/flight-insight/flightinsight/internal/usecase/health"
)

// Answerer streams a generated answer for a query through emit.
type Answerer interface {
	Answer(ctx context.Context, query string, emit func(text string) error) error
}

// HealthChecker runs component health checks.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server exposes the question-answering API: a websocket for streamed
// answers plus REST endpoints for the supported airlines, health, and
// metrics.
type Server struct {
	answer         Answerer
	health         HealthChecker
	vocab          *domain.Vocabulary
	allowedOrigins map[string]bool
	logger         *zap.Logger
}

// NewServer creates an HTTP API server. allowedOrigins lists browser
// origins permitted to open the websocket; "*" allows any.
func NewServer(
	answer Answerer,
	health HealthChecker,
	vocab *domain.Vocabulary,
	allowedOrigins []string,
	logger *zap.Logger,
) *Server {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Server{
		answer:         answer,
		health:         health,
		vocab:          vocab,
		allowedOrigins: origins,
		logger:         logger,
	}
}

// Routes registers all endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/supported-airlines", s.SupportedAirlines)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/ws", s.ServeWS)
}

// SupportedAirlines handles GET /supported-airlines.
func (s *Server) SupportedAirlines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"airlines": s.vocab.Airlines(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
