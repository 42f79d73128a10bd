package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"aid-backend/internal/middleware"
	"aid-backend/internal/models"
	"aid-backend/internal/repositories"
	"aid-backend/internal/services"
	"aid-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// respondError maps service errors onto HTTP status codes
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStateConflict):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("[Handlers] internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID extracts the {id} route variable
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// currentUserID returns the authenticated admin's id from the request context
func currentUserID(r *http.Request) (int, bool) {
	return middleware.GetUserIDFromContext(r.Context())
}

// getIPAddress extracts the client IP, preferring proxy headers
func getIPAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// auditor records admin mutations to the action log. Log failures never fail
// the mutation itself.
type auditor struct {
	logs *repositories.AdminActionLogRepository
}

func (a *auditor) record(r *http.Request, actionType, targetType string, targetID int, description string) {
	if a == nil || a.logs == nil {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return
	}
	ip := getIPAddress(r)
	entry := &models.AdminActionLog{
		AdminUserID: userID,
		ActionType:  actionType,
		TargetType:  targetType,
		Description: description,
		IPAddress:   &ip,
	}
	if targetID != 0 {
		entry.TargetID = &targetID
	}
	if err := a.logs.Create(context.WithoutCancel(r.Context()), entry); err != nil {
		log.Printf("[Audit] failed to record %s %s: %v", actionType, targetType, err)
	}
}
