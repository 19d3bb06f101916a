// Package httpapi serves the read-only ops API: health, Prometheus metrics,
// club listings, and audit log queries. Everything under /api requires a
// bearer token signed with the configured secret.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/observability"
)

// Config holds HTTP server settings.
type Config struct {
	Address   string
	JWTSecret string
}

// Server is the ops HTTP server.
type Server struct {
	cfg    Config
	logger *slog.Logger
	srv    *http.Server
}

// NewServer builds the server and its routes.
func NewServer(cfg Config, logger *slog.Logger, metrics *observability.Registry, clubs ClubLister, audit AuditQuerier) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Prometheus(), promhttp.HandlerOpts{}))

	api := &apiHandlers{logger: logger, clubs: clubs, audit: audit}
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(bearerAuth(cfg.JWTSecret, logger))
		r.Get("/clubs", api.listClubs)
		r.Get("/audit", api.queryAudit)
	})

	return &Server{
		cfg:    cfg,
		logger: logger,
		srv: &http.Server{
			Addr:              cfg.Address,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Ops HTTP server listening", attr.String("address", s.cfg.Address))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
