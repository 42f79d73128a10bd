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

type CourierHandler struct {
	couriers *services.CourierService
	audit    *auditor
}

func NewCourierHandler(couriers *services.CourierService, logs *repositories.AdminActionLogRepository) *CourierHandler {
	return &CourierHandler{couriers: couriers, audit: &auditor{logs: logs}}
}

// Create handles POST /api/couriers
func (h *CourierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.couriers.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "CREATE", "courier", c.ID, fmt.Sprintf("registered courier %s", c.Name))
	utils.JSON(w, http.StatusCreated, c)
}

// List handles GET /api/couriers, optionally filtered by service area
func (h *CourierHandler) List(w http.ResponseWriter, r *http.Request) {
	area := r.URL.Query().Get("service_area")

	var (
		couriers []models.Courier
		err      error
	)
	if area != "" {
		couriers, err = h.couriers.ListByServiceArea(r.Context(), area)
	} else {
		couriers, err = h.couriers.List(r.Context())
	}
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, couriers)
}

// Get handles GET /api/couriers/{id}
func (h *CourierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid courier id")
		return
	}

	c, err := h.couriers.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, c)
}

// UpdateStatus handles PUT /api/couriers/{id}/status
func (h *CourierHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid courier id")
		return
	}

	var req models.UpdateCourierStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.couriers.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "UPDATE", "courier", id, fmt.Sprintf("status -> %s", req.Status))
	utils.JSON(w, http.StatusOK, c)
}

// Nearby handles GET /api/couriers/nearby?lat=&lon=&radius_km=
func (h *CourierHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		utils.Error(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	radius := 10.0
	if v := q.Get("radius_km"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid radius_km")
			return
		}
		radius = parsed
	}

	couriers, err := h.couriers.ListNearby(r.Context(), lat, lon, radius)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, couriers)
}
