// Package router provides HTTP routing configuration using Chi.
package router

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/remiblancher/certinfo/internal/api/handler"
	"github.com/remiblancher/certinfo/internal/api/middleware"
	"github.com/remiblancher/certinfo/internal/api/service"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Config holds router configuration.
type Config struct {
	Version     string
	Inspector   service.Inspector
	DefaultPort int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS)

	healthHandler := handler.NewHealthHandler(cfg.Version)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Get("/api/openapi.yaml", serveOpenAPISpec)

	certHandler := handler.NewCertificateHandler(service.NewInspectService(cfg.Inspector), cfg.DefaultPort)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/certificates/{host}", certHandler.Get)
	})

	r.NotFound(handler.NotFound)

	return r
}

func serveOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapiSpec)
}
