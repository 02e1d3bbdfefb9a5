// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints:
// the structured error envelope, the service-error to HTTP mapping, and the
// persist-warning signal used when a mutation succeeded in memory but could
// not be written to the blob store.
//
// Conventions:
//   - All error responses return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
//   - `failFor()` maps service sentinels (errors.Is) to status + code.
//   - A persist failure never turns a successful mutation into an error; the
//     success status is kept and X-Persist-Warning is set instead.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "conflict",
//	  "message": "mobile number already exists"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/neolink-backend/internal/http/middleware"
	"github.com/tbourn/neolink-backend/internal/services"
)

// HeaderPersistWarning is set on successful mutation responses whose new
// state could not be persisted.
const HeaderPersistWarning = middleware.HeaderPersistWarning

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: Optional correlation ID, echoed from X-Request-ID header, used
//     to correlate server logs with client-side errors.
//   - Code: A stable, machine-readable string (see errors.go constants).
//   - Message: A human-readable error description, safe for display to users.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"contact not found"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failFor maps a service error to its HTTP status and code.
//
//	ErrValidation      → 400 validation_failed
//	ErrInvalidTheme    → 400 bad_request
//	ErrInvalidPIN      → 403 forbidden
//	ErrContactNotFound → 404 not_found
//	ErrDuplicateMobile → 409 conflict
//	ErrLocked          → 423 locked
//	anything else      → 500 internal_error
func failFor(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, services.ErrInvalidTheme):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidPIN):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid pin")
	case errors.Is(err, services.ErrContactNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "contact not found")
	case errors.Is(err, services.ErrDuplicateMobile):
		fail(c, http.StatusConflict, ErrCodeConflict, "mobile number already exists")
	case errors.Is(err, services.ErrLocked):
		fail(c, http.StatusLocked, ErrCodeLocked, "action locked: unlock with the admin pin first")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// persistWarning reports whether err only signals a failed write-back. In
// that case it sets the warning header and logs; the caller should still
// answer with its success response.
func persistWarning(c *gin.Context, err error) bool {
	if !errors.Is(err, services.ErrPersist) {
		return false
	}
	c.Header(HeaderPersistWarning, "state changed but was not saved")
	lg := middleware.LoggerFrom(c)
	lg.Warn().Err(err).Msg("persist failed")
	return true
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
