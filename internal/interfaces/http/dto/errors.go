package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain error codes pass through to the
// client unchanged; these cover failures raised by the HTTP layer itself.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	ErrCodeValidation   = "VALIDATION_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes missing from the map fall back by prefix, then to 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,

	// Uniqueness conflicts
	"USERNAME_TAKEN":    http.StatusConflict,
	"UNIT_NUMBER_TAKEN": http.StatusConflict,
	"RECEIPT_EXISTS":    http.StatusConflict,
	"PHONE_TAKEN":       http.StatusConflict,

	// Business rule violations
	"UNIT_NOT_VACANT":       http.StatusUnprocessableEntity,
	"UNIT_OCCUPIED":         http.StatusUnprocessableEntity,
	"CUSTOMER_HAS_CONTRACT": http.StatusUnprocessableEntity,
	"RECEIPT_HAS_PAYMENTS":  http.StatusUnprocessableEntity,
	"PROPERTY_INACTIVE":     http.StatusUnprocessableEntity,
	"PROPERTY_HAS_UNITS":    http.StatusUnprocessableEntity,
	"INVALID_STATE":         http.StatusUnprocessableEntity,

	// Missing related state
	"NO_PHOTOS": http.StatusNotFound,

	// Infrastructure
	"PRINTING_DISABLED": http.StatusServiceUnavailable,
	"STORAGE_DISABLED":  http.StatusServiceUnavailable,
	"RENDER_FAILED":     http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_* codes not listed above are treated as bad input.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
