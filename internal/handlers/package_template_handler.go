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

type PackageTemplateHandler struct {
	templates *services.PackageTemplateService
	audit     *auditor
}

func NewPackageTemplateHandler(templates *services.PackageTemplateService, logs *repositories.AdminActionLogRepository) *PackageTemplateHandler {
	return &PackageTemplateHandler{templates: templates, audit: &auditor{logs: logs}}
}

// Create handles POST /api/package-templates
func (h *PackageTemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var t models.PackageTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.templates.Create(r.Context(), &t)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "CREATE", "package_template", created.ID, fmt.Sprintf("created template %s", created.Name))
	utils.JSON(w, http.StatusCreated, created)
}

// List handles GET /api/package-templates
func (h *PackageTemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, templates)
}

// Get handles GET /api/package-templates/{id}
func (h *PackageTemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid template id")
		return
	}

	t, err := h.templates.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

// Deactivate handles PUT /api/package-templates/{id}/deactivate
func (h *PackageTemplateHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := h.templates.Deactivate(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "UPDATE", "package_template", id, "deactivated template")
	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": false})
}
