package http

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"entropyx/internal/dataprocessing"
	apierrors "entropyx/internal/errors"
	"entropyx/internal/entropy"
	"entropyx/internal/panel"
)

// SeriesHandler serves the statistics reports generated by entropy-report.
// Reports are re-read from the reports directory on each request; they are
// small and this keeps the server stateless across report regenerations.
type SeriesHandler struct {
	reportsDir string
	logger     *slog.Logger
}

// NewSeriesHandler creates a handler serving reports from reportsDir.
func NewSeriesHandler(reportsDir string, logger *slog.Logger) *SeriesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesHandler{
		reportsDir: reportsDir,
		logger:     logger.With(slog.String("component", "series_handler")),
	}
}

// Routes returns the report API routes.
func (h *SeriesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/{axis}", func(r chi.Router) {
		r.Use(h.AxisCtx)
		r.Get("/stats", h.GetStats)
		r.Get("/series/{metric}", h.GetSeries)
	})

	return r
}

// AxisCtx validates the axis URL parameter.
func (h *SeriesHandler) AxisCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := panel.ParseAxis(chi.URLParam(r, "axis")); err != nil {
			render.Render(w, r, apierrors.InvalidParameter("axis",
				"axis must be cross_section or time_series"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStats serves the full per-partition statistics table for one axis.
func (h *SeriesHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	rs, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, rs)
}

// GetSeries serves one key-aligned statistic series for one axis.
func (h *SeriesHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")

	rs, ok := h.loadReport(w, r)
	if !ok {
		return
	}

	series, ok := rs.Series().ByName(metric)
	if !ok {
		render.Render(w, r, apierrors.InvalidParameter("metric",
			"metric must be one of dispersion, entropy, cond_entropy, mutual_info"))
		return
	}

	render.JSON(w, r, map[string]any{
		"axis":   rs.Axis.String(),
		"metric": metric,
		"series": series,
	})
}

// loadReport reads the axis' report from disk, rendering the API error
// itself when that fails.
func (h *SeriesHandler) loadReport(w http.ResponseWriter, r *http.Request) (*entropy.ResultSet, bool) {
	axis, _ := panel.ParseAxis(chi.URLParam(r, "axis"))

	path := dataprocessing.StatsReportPath(h.reportsDir, axis)
	rs, err := dataprocessing.LoadStatsReport(path, axis)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			reportLoads.WithLabelValues(axis.String(), "missing").Inc()
			render.Render(w, r, apierrors.ErrReportNotFound)
			return nil, false
		}
		h.logger.ErrorContext(r.Context(), "failed to load stats report",
			"path", path, "error", err)
		reportLoads.WithLabelValues(axis.String(), "error").Inc()
		render.Render(w, r, apierrors.InternalWithError(err))
		return nil, false
	}

	reportLoads.WithLabelValues(axis.String(), "ok").Inc()
	return rs, true
}
