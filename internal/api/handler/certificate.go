package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/remiblancher/certinfo/internal/api/errors"
	"github.com/remiblancher/certinfo/pkg/certinfo"
)

// CertificateService is what CertificateHandler needs from the service layer.
type CertificateService interface {
	Inspect(ctx context.Context, host string, port int) (*certinfo.Record, error)
}

// CertificateHandler serves leaf certificate records.
type CertificateHandler struct {
	service     CertificateService
	defaultPort int
}

// NewCertificateHandler creates a new CertificateHandler. defaultPort is
// used when the request has no port parameter.
func NewCertificateHandler(svc CertificateService, defaultPort int) *CertificateHandler {
	return &CertificateHandler{service: svc, defaultPort: defaultPort}
}

// Get handles GET /api/v1/certificates/{host}?port=N.
func (h *CertificateHandler) Get(w http.ResponseWriter, r *http.Request) {
	host := strings.TrimSpace(chi.URLParam(r, "host"))
	if host == "" {
		respondError(w, http.StatusBadRequest, apierrors.NewBadRequest("host is required"))
		return
	}

	port := h.defaultPort
	if raw := r.URL.Query().Get("port"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 || p > 65535 {
			respondError(w, http.StatusBadRequest,
				apierrors.NewBadRequest("port must be an integer between 1 and 65535"))
			return
		}
		port = p
	}

	rec, err := h.service.Inspect(r.Context(), host, port)
	if err != nil {
		status, apiErr := apierrors.MapError(err)
		respondError(w, status, apiErr)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}
