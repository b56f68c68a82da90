package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/athletics-rankings-etl/internal/catalog"
	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RankingsService serves result sets for cataloged events.
type RankingsService interface {
	sharedobs.ReadinessChecker
	Catalog() *catalog.Catalog
	Rankings(ctx context.Context, code string, refresh bool) (domain.ResultSet, error)
}

// Server exposes the rankings API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	service    RankingsService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api routes.
func NewServer(addr string, service RankingsService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:        addr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			// A cache miss fetches the upstream page synchronously.
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(service))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/rankings/{event}", s.handleRankings)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.service.Catalog().All())
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("event")
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	rs, err := s.service.Rankings(r.Context(), code, refresh)
	switch {
	case err == nil:
		sharedobs.WriteJSON(w, http.StatusOK, rs)
	case errors.Is(err, catalog.ErrUnknownEvent):
		sharedobs.WriteJSON(w, http.StatusNotFound, domain.FailedResultSet(code, err))
	default:
		s.logger.Error("rankings request failed", "event", code, "error", err)
		sharedobs.WriteJSON(w, http.StatusBadGateway, domain.FailedResultSet(code, err))
	}
}
