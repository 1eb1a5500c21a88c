package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/game-shelf/internal/service"
)

// StatsHandler serves the derived per-user summary.
type StatsHandler struct {
	service *service.StatsService
	logger  *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{service: service, logger: logger}
}

// HandleSummary computes and returns one user's statistics.
//
// HTTP: GET /resources/stats?userId=
// The summary is recomputed from the user's full game and review sets on
// every request; nothing is cached or persisted.
func (h *StatsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Summary(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
