package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the report API router.
func NewRouter(reportsDir, version string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger)

	health := NewHealthHandler(version)
	r.Get("/healthz", health.Healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/api", NewSeriesHandler(reportsDir, logger).Routes())

	return r
}
