// Package errors maps inspection failures to HTTP responses.
package errors

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/remiblancher/certinfo/internal/api/dto"
	"github.com/remiblancher/certinfo/pkg/certinfo"
)

// Error codes for API responses.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeConnectionFailed = "CONNECTION_FAILED"
	CodeHandshakeFailed  = "HANDSHAKE_FAILED"
	CodeTimeout          = "TIMEOUT"
	CodeDecodeFailed     = "DECODE_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)

// MapError maps an error to an HTTP status code and APIError.
func MapError(err error) (int, *dto.APIError) {
	if err == nil {
		return http.StatusOK, nil
	}

	var inspErr *certinfo.Error
	if !errors.As(err, &inspErr) {
		return http.StatusInternalServerError, &dto.APIError{
			Code:    CodeInternal,
			Message: "An internal error occurred",
		}
	}

	apiErr := &dto.APIError{
		Message: inspErr.Error(),
		Details: map[string]string{"kind": inspErr.Kind.String()},
	}
	if inspErr.Host != "" {
		apiErr.Details["host"] = inspErr.Host
		apiErr.Details["port"] = strconv.Itoa(inspErr.Port)
	}

	var status int
	switch inspErr.Kind {
	case certinfo.KindConnection:
		status, apiErr.Code = http.StatusBadGateway, CodeConnectionFailed
	case certinfo.KindHandshake:
		status, apiErr.Code = http.StatusBadGateway, CodeHandshakeFailed
	case certinfo.KindTimeout:
		status, apiErr.Code = http.StatusGatewayTimeout, CodeTimeout
	case certinfo.KindDecode:
		status, apiErr.Code = http.StatusUnprocessableEntity, CodeDecodeFailed
	default:
		status, apiErr.Code = http.StatusInternalServerError, CodeInternal
	}
	return status, apiErr
}

// NewBadRequest creates a bad request error.
func NewBadRequest(message string) *dto.APIError {
	return &dto.APIError{
		Code:    CodeInvalidRequest,
		Message: message,
	}
}

// NewNotFound creates a not found error for an unknown route.
func NewNotFound(path string) *dto.APIError {
	return &dto.APIError{
		Code:    CodeNotFound,
		Message: "no route for " + path,
	}
}
