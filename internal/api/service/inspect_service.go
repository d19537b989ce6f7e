// Package service provides business logic for the REST API.
package service

import (
	"context"

	"github.com/remiblancher/certinfo/internal/audit"
	"github.com/remiblancher/certinfo/pkg/certinfo"
)

// Inspector is the certificate pipeline used by the service.
type Inspector interface {
	Inspect(ctx context.Context, host string, port int) (*certinfo.Record, error)
}

// InspectService inspects endpoints on behalf of API clients and records
// each attempt in the audit log.
type InspectService struct {
	inspector Inspector
}

// NewInspectService creates a new InspectService.
func NewInspectService(inspector Inspector) *InspectService {
	return &InspectService{inspector: inspector}
}

// Inspect returns the leaf certificate record for host:port.
// An audit write failure fails the request even when inspection succeeded.
func (s *InspectService) Inspect(ctx context.Context, host string, port int) (*certinfo.Record, error) {
	rec, err := s.inspector.Inspect(ctx, host, port)
	if auditErr := audit.LogInspection("api", host, port, rec, err); auditErr != nil {
		return nil, auditErr
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
