package middleware

import (
	"net/http"

	"aid-backend/internal/config"

	"github.com/rs/cors"
)

func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   orDefault(cfg.Server.CorsAllowedOrigins, []string{"*"}),
		AllowedMethods:   orDefault(cfg.Server.CorsAllowedMethods, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   orDefault(cfg.Server.CorsAllowedHeaders, []string{"Authorization", "Content-Type"}),
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	})

	return c.Handler
}

func orDefault(configured, fallback []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return fallback
}
