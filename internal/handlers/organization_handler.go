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

type OrganizationHandler struct {
	organizations *services.OrganizationService
	audit         *auditor
}

func NewOrganizationHandler(organizations *services.OrganizationService, logs *repositories.AdminActionLogRepository) *OrganizationHandler {
	return &OrganizationHandler{organizations: organizations, audit: &auditor{logs: logs}}
}

// Create handles POST /api/organizations
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.organizations.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "CREATE", "organization", o.ID, fmt.Sprintf("registered organization %s", o.Name))
	utils.JSON(w, http.StatusCreated, o)
}

// List handles GET /api/organizations
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	organizations, err := h.organizations.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, organizations)
}

// Get handles GET /api/organizations/{id}
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	o, err := h.organizations.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, o)
}
