package http

import (
	"net/http"

	"aid-backend/internal/config"
	"aid-backend/internal/handlers"
	"aid-backend/internal/middleware"
	"aid-backend/internal/realtime"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Beneficiaries *handlers.BeneficiaryHandler
	Templates     *handlers.PackageTemplateHandler
	Couriers      *handlers.CourierHandler
	Organizations *handlers.OrganizationHandler
	Families      *handlers.FamilyHandler
	Requests      *handlers.DistributionRequestHandler
	Tasks         *handlers.TaskHandler
	Alerts        *handlers.AlertHandler
	Statistics    *handlers.StatisticsHandler
	Health        *handlers.HealthHandler
}

// NewRouter assembles the full HTTP surface
func NewRouter(cfg *config.Config, h *Handlers, authMW *middleware.AuthMiddleware, hub *realtime.Hub) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)

	// Public surface
	r.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/health", h.Health.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/ws", hub.ServeWS)

	// Authenticated API
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMW.Authenticate)

	api.HandleFunc("/beneficiaries", h.Beneficiaries.List).Methods("GET")
	api.HandleFunc("/beneficiaries", h.Beneficiaries.Create).Methods("POST")
	api.HandleFunc("/beneficiaries/stats", h.Beneficiaries.Stats).Methods("GET")
	api.HandleFunc("/beneficiaries/{id:[0-9]+}", h.Beneficiaries.Get).Methods("GET")
	api.HandleFunc("/beneficiaries/{id:[0-9]+}", h.Beneficiaries.Update).Methods("PUT")
	api.HandleFunc("/beneficiaries/{id:[0-9]+}/verify-identity", h.Beneficiaries.VerifyIdentity).Methods("PUT")

	api.HandleFunc("/package-templates", h.Templates.List).Methods("GET")
	api.HandleFunc("/package-templates", h.Templates.Create).Methods("POST")
	api.HandleFunc("/package-templates/{id:[0-9]+}", h.Templates.Get).Methods("GET")
	api.HandleFunc("/package-templates/{id:[0-9]+}/deactivate", h.Templates.Deactivate).Methods("PUT")

	api.HandleFunc("/couriers", h.Couriers.List).Methods("GET")
	api.HandleFunc("/couriers", h.Couriers.Create).Methods("POST")
	api.HandleFunc("/couriers/nearby", h.Couriers.Nearby).Methods("GET")
	api.HandleFunc("/couriers/{id:[0-9]+}", h.Couriers.Get).Methods("GET")
	api.HandleFunc("/couriers/{id:[0-9]+}/status", h.Couriers.UpdateStatus).Methods("PUT")

	api.HandleFunc("/organizations", h.Organizations.List).Methods("GET")
	api.HandleFunc("/organizations", h.Organizations.Create).Methods("POST")
	api.HandleFunc("/organizations/{id:[0-9]+}", h.Organizations.Get).Methods("GET")
	api.HandleFunc("/organizations/{id:[0-9]+}/beneficiaries", h.Beneficiaries.ListByOrganization).Methods("GET")

	api.HandleFunc("/families", h.Families.List).Methods("GET")
	api.HandleFunc("/families", h.Families.Create).Methods("POST")
	api.HandleFunc("/families/{id:[0-9]+}", h.Families.Get).Methods("GET")
	api.HandleFunc("/families/{id:[0-9]+}/beneficiaries", h.Beneficiaries.ListByFamily).Methods("GET")

	api.HandleFunc("/distribution-requests", h.Requests.List).Methods("GET")
	api.HandleFunc("/distribution-requests", h.Requests.Create).Methods("POST")
	api.HandleFunc("/distribution-requests/stats", h.Requests.Stats).Methods("GET")
	api.HandleFunc("/distribution-requests/{id:[0-9]+}", h.Requests.Get).Methods("GET")
	api.HandleFunc("/distribution-requests/{id:[0-9]+}/approve", h.Requests.Approve).Methods("PUT")
	api.HandleFunc("/distribution-requests/{id:[0-9]+}/reject", h.Requests.Reject).Methods("PUT")
	api.HandleFunc("/distribution-requests/{id:[0-9]+}/tasks", h.Requests.Tasks).Methods("GET")

	api.HandleFunc("/tasks", h.Tasks.ListByCourier).Methods("GET")
	api.HandleFunc("/tasks/{id:[0-9]+}/status", h.Tasks.UpdateStatus).Methods("PUT")

	api.HandleFunc("/alerts", h.Alerts.List).Methods("GET")
	api.HandleFunc("/alerts/{id:[0-9]+}/read", h.Alerts.MarkRead).Methods("PUT")
	api.HandleFunc("/alerts/{id:[0-9]+}", h.Alerts.Delete).Methods("DELETE")

	api.HandleFunc("/statistics/dashboard", h.Statistics.Dashboard).Methods("GET")

	// User management is admin-only
	admin := r.PathPrefix("/api/users").Subrouter()
	admin.Use(authMW.RequireAdmin)
	admin.HandleFunc("", h.Users.List).Methods("GET")
	admin.HandleFunc("", h.Users.Create).Methods("POST")
	admin.HandleFunc("/{id:[0-9]+}/active", h.Users.SetActive).Methods("PUT")

	return middleware.NewCORS(cfg)(r)
}
