package handlers

import (
	"net/http"

	"aid-backend/internal/services"
	"aid-backend/pkg/utils"
)

type StatisticsHandler struct {
	statistics *services.StatisticsService
}

func NewStatisticsHandler(statistics *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics}
}

// Dashboard handles GET /api/statistics/dashboard
func (h *StatisticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statistics.Dashboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
