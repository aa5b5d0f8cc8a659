package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rmaia/fiicompass/internal/analysis"
	"github.com/rmaia/fiicompass/internal/collector"
	"github.com/rmaia/fiicompass/internal/store"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// DashboardHandler serves the ranked table, fund details and history.
type DashboardHandler struct {
	service *analysis.Service
	repo    *store.Repository // nil when no database is configured
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *analysis.Service, repo *store.Repository, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		repo:    repo,
		logger:  log,
	}
}

// GetRanking returns the scored, ranked fund table.
// GET /api/ranking
func (h *DashboardHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.RunCached(r.Context())
	if err != nil {
		if errors.Is(err, collector.ErrNoData) {
			// Total acquisition failure: explicitly not the same as an
			// empty table
			respondError(w, http.StatusServiceUnavailable, "no fund data available from any source")
			return
		}
		h.logger.WithError(err).Error("Ranking pass failed")
		respondError(w, http.StatusInternalServerError, "analysis pass failed")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// fundRow is one row of the funds listing.
type fundRow struct {
	Ticker   string             `json:"ticker"`
	Category string             `json:"category"`
	Latest   *store.HistoryPoint `json:"latest,omitempty"`
}

// GetFunds returns the configured universe with the latest stored metrics.
// GET /api/funds
func (h *DashboardHandler) GetFunds(w http.ResponseWriter, r *http.Request) {
	universe := h.service.Universe()

	var latest map[string]store.HistoryPoint
	if h.repo != nil {
		var err error
		latest, err = h.repo.LatestMetrics(r.Context())
		if err != nil {
			h.logger.WithError(err).Warn("Failed to load latest metrics")
		}
	}

	rows := make([]fundRow, 0, len(universe))
	for _, fd := range universe {
		row := fundRow{
			Ticker:   fd.Ticker,
			Category: string(fd.Category),
		}
		if p, ok := latest[fd.Ticker]; ok {
			point := p
			row.Latest = &point
		}
		rows = append(rows, row)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(rows),
		"funds": rows,
	})
}

// GetHistory returns the stored metric series for one fund.
// GET /api/funds/{ticker}/history?days=180
func (h *DashboardHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "history storage not configured")
		return
	}

	ticker := mux.Vars(r)["ticker"]

	days := 180
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	from := time.Now().AddDate(0, 0, -days)
	points, err := h.repo.GetHistory(r.Context(), ticker, from)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load history")
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker": ticker,
		"days":   days,
		"count":  len(points),
		"points": points,
	})
}

// GetReferenceRate returns the current reference rate and its source.
// GET /api/reference-rate
func (h *DashboardHandler) GetReferenceRate(w http.ResponseWriter, r *http.Request) {
	rate, src := h.service.ReferenceRate(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rate":   rate,
		"source": src,
	})
}

// Collect triggers a fresh collection pass.
// POST /api/collect
func (h *DashboardHandler) Collect(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Run(r.Context())
	if err != nil {
		if errors.Is(err, collector.ErrNoData) {
			respondError(w, http.StatusServiceUnavailable, "no fund data available from any source")
			return
		}
		h.logger.WithError(err).Error("Collection pass failed")
		respondError(w, http.StatusInternalServerError, "collection pass failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"generated_at":   report.GeneratedAt,
		"collected":      len(report.Entries),
		"failed_tickers": report.Failed,
		"metric_source":  report.MetricSource,
	})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
