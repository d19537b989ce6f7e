package handler

import (
	"net/http"

	"github.com/remiblancher/certinfo/internal/api/dto"
	"github.com/remiblancher/certinfo/internal/audit"
)

// HealthHandler handles health and readiness endpoints.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready handles GET /ready. The audit check is informational.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := dto.ReadyResponse{
		Ready: true,
		Checks: map[string]bool{
			"server": true,
			"audit":  audit.Enabled(),
		},
	}
	respondJSON(w, http.StatusOK, resp)
}
