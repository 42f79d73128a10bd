package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"aid-backend/internal/models"
	"aid-backend/internal/repositories"
	"aid-backend/internal/services"
	"aid-backend/pkg/utils"
)

type DistributionRequestHandler struct {
	distributions *services.DistributionService
	audit         *auditor
}

func NewDistributionRequestHandler(distributions *services.DistributionService, logs *repositories.AdminActionLogRepository) *DistributionRequestHandler {
	return &DistributionRequestHandler{distributions: distributions, audit: &auditor{logs: logs}}
}

// Create handles POST /api/distribution-requests
func (h *DistributionRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDistributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.distributions.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "CREATE", "distribution_request", request.ID,
		fmt.Sprintf("submitted %s request for %d packages", request.Type, request.RequestedQuantity))
	utils.JSON(w, http.StatusCreated, request)
}

// List handles GET /api/distribution-requests with filter query params
func (h *DistributionRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.RequestFilter{
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
	}

	requests, err := h.distributions.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, requests)
}

// Get handles GET /api/distribution-requests/{id}
func (h *DistributionRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request id")
		return
	}

	request, err := h.distributions.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, request)
}

// Approve handles PUT /api/distribution-requests/{id}/approve
func (h *DistributionRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req models.ApproveDistributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adminID, _ := currentUserID(r)
	request, err := h.distributions.Approve(r.Context(), id, adminID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "APPROVE", "distribution_request", id,
		fmt.Sprintf("approved %d of %d packages, courier %d", req.ApprovedQuantity, request.RequestedQuantity, req.CourierID))
	utils.JSON(w, http.StatusOK, request)
}

// Reject handles PUT /api/distribution-requests/{id}/reject
func (h *DistributionRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req models.RejectDistributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adminID, _ := currentUserID(r)
	request, err := h.distributions.Reject(r.Context(), id, adminID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "REJECT", "distribution_request", id, req.RejectionReason)
	utils.JSON(w, http.StatusOK, request)
}

// Stats handles GET /api/distribution-requests/stats
func (h *DistributionRequestHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.distributions.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

// Tasks handles GET /api/distribution-requests/{id}/tasks
func (h *DistributionRequestHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request id")
		return
	}

	tasks, err := h.distributions.ListTasksByRequest(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tasks)
}
