package handlers

import (
	"encoding/json"
	"net/http"

	"aid-backend/internal/models"
	"aid-backend/internal/services"
	"aid-backend/pkg/utils"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		// credential failures come back as validation errors; surface 401
		utils.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
