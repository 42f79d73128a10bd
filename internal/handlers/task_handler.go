package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"aid-backend/internal/models"
	"aid-backend/internal/repositories"
	"aid-backend/internal/services"
	"aid-backend/pkg/utils"
)

type TaskHandler struct {
	distributions *services.DistributionService
	audit         *auditor
}

func NewTaskHandler(distributions *services.DistributionService, logs *repositories.AdminActionLogRepository) *TaskHandler {
	return &TaskHandler{distributions: distributions, audit: &auditor{logs: logs}}
}

// ListByCourier handles GET /api/tasks?courier_id=
func (h *TaskHandler) ListByCourier(w http.ResponseWriter, r *http.Request) {
	courierID, err := strconv.Atoi(r.URL.Query().Get("courier_id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "courier_id is required")
		return
	}

	tasks, err := h.distributions.ListTasksByCourier(r.Context(), courierID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tasks)
}

// UpdateStatus handles PUT /api/tasks/{id}/status
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req models.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.distributions.UpdateTaskStatus(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "UPDATE", "task", id, fmt.Sprintf("status -> %s", req.Status))
	utils.JSON(w, http.StatusOK, task)
}
