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

type BeneficiaryHandler struct {
	beneficiaries *services.BeneficiaryService
	audit         *auditor
}

func NewBeneficiaryHandler(beneficiaries *services.BeneficiaryService, logs *repositories.AdminActionLogRepository) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaries: beneficiaries, audit: &auditor{logs: logs}}
}

// Create handles POST /api/beneficiaries
func (h *BeneficiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBeneficiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.beneficiaries.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "CREATE", "beneficiary", b.ID, fmt.Sprintf("registered beneficiary %s", b.Name))
	utils.JSON(w, http.StatusCreated, b)
}

// List handles GET /api/beneficiaries, with optional area filters
func (h *BeneficiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AreaFilter{
		Governorate: q.Get("governorate"),
		City:        q.Get("city"),
		District:    q.Get("district"),
	}

	var (
		beneficiaries []models.Beneficiary
		err           error
	)
	if filter.Governorate == "" && filter.City == "" && filter.District == "" {
		beneficiaries, err = h.beneficiaries.List(r.Context())
	} else {
		beneficiaries, err = h.beneficiaries.ListByArea(r.Context(), filter)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, beneficiaries)
}

// Get handles GET /api/beneficiaries/{id}
func (h *BeneficiaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid beneficiary id")
		return
	}

	b, err := h.beneficiaries.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, b)
}

// Update handles PUT /api/beneficiaries/{id}
func (h *BeneficiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid beneficiary id")
		return
	}

	var req models.UpdateBeneficiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.beneficiaries.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "UPDATE", "beneficiary", id, "updated beneficiary profile")
	utils.JSON(w, http.StatusOK, b)
}

// VerifyIdentity handles PUT /api/beneficiaries/{id}/verify-identity
func (h *BeneficiaryHandler) VerifyIdentity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid beneficiary id")
		return
	}

	var req models.VerifyIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.beneficiaries.VerifyIdentity(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "UPDATE", "beneficiary", id, fmt.Sprintf("identity review: %s", req.Status))
	utils.JSON(w, http.StatusOK, b)
}

// ListByFamily handles GET /api/families/{id}/beneficiaries
func (h *BeneficiaryHandler) ListByFamily(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid family id")
		return
	}

	beneficiaries, err := h.beneficiaries.ListByFamily(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, beneficiaries)
}

// ListByOrganization handles GET /api/organizations/{id}/beneficiaries
func (h *BeneficiaryHandler) ListByOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	beneficiaries, err := h.beneficiaries.ListByOrganization(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, beneficiaries)
}

// Stats handles GET /api/beneficiaries/stats
func (h *BeneficiaryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.beneficiaries.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
