package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"holocron/config"
	"holocron/internal/logger"
)

// CORS wraps an http.Handler; it sits outside gin so preflight requests never reach the router.
type CORS struct {
	*cors.Cors
}

func NewCORS(cfg *config.CORSConfig) *CORS {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

	logger.WithComponent("cors").Debug("cors configured", "allowed_origins", origins, "debug", cfg.Debug)
	return &CORS{cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		Debug:          cfg.Debug,
	})}
}

func (c *CORS) Middleware(h http.Handler) http.Handler {
	return c.Cors.Handler(h)
}
