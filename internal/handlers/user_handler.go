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

type UserHandler struct {
	users *services.UserService
	audit *auditor
}

func NewUserHandler(users *services.UserService, logs *repositories.AdminActionLogRepository) *UserHandler {
	return &UserHandler{users: users, audit: &auditor{logs: logs}}
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.CreateUser(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "CREATE", "user", user.ID, fmt.Sprintf("created %s user %s", user.Role, user.Email))
	utils.JSON(w, http.StatusCreated, user)
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

// SetActive handles PUT /api/users/{id}/active
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.users.SetUserActive(r.Context(), id, req.IsActive); err != nil {
		respondError(w, err)
		return
	}
	h.audit.record(r, "UPDATE", "user", id, fmt.Sprintf("set active=%t", req.IsActive))
	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": req.IsActive})
}
