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

type FamilyHandler struct {
	families *services.FamilyService
	audit    *auditor
}

func NewFamilyHandler(families *services.FamilyService, logs *repositories.AdminActionLogRepository) *FamilyHandler {
	return &FamilyHandler{families: families, audit: &auditor{logs: logs}}
}

// Create handles POST /api/families
func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.families.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "CREATE", "family", f.ID, fmt.Sprintf("registered family %s", f.Name))
	utils.JSON(w, http.StatusCreated, f)
}

// List handles GET /api/families
func (h *FamilyHandler) List(w http.ResponseWriter, r *http.Request) {
	families, err := h.families.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, families)
}

// Get handles GET /api/families/{id}
func (h *FamilyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid family id")
		return
	}

	f, err := h.families.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, f)
}
