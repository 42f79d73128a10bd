package handlers

import (
	"net/http"

	"aid-backend/internal/repositories"
	"aid-backend/internal/services"
	"aid-backend/pkg/utils"
)

type AlertHandler struct {
	alerts *services.AlertService
	audit  *auditor
}

func NewAlertHandler(alerts *services.AlertService, logs *repositories.AdminActionLogRepository) *AlertHandler {
	return &AlertHandler{alerts: alerts, audit: &auditor{logs: logs}}
}

// List handles GET /api/alerts
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alerts.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, alerts)
}

// MarkRead handles PUT /api/alerts/{id}/read
func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	if err := h.alerts.MarkRead(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"is_read": true})
}

// Delete handles DELETE /api/alerts/{id}
func (h *AlertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	if err := h.alerts.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "DELETE", "alert", id, "deleted alert")
	w.WriteHeader(http.StatusNoContent)
}
