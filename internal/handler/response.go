package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/middleware"
	"github.com/dukerupert/verdant/internal/telemetry"
)

// Envelope is the JSON body shared by every API response.
type Envelope map[string]any

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope. Extra keys are merged into the body.
func OK(w http.ResponseWriter, message string, extra Envelope) {
	Success(w, http.StatusOK, message, extra)
}

// Success writes {"success":true,"message":...} plus extra keys.
func Success(w http.ResponseWriter, status int, message string, extra Envelope) {
	body := Envelope{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	JSON(w, status, body)
}

// ErrorResponse maps err to a status code and writes the error envelope.
// Validation errors carry their field messages under "errors".
// Internal errors are logged with full detail, reported to Sentry and
// answered with a generic message.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := middleware.ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"op", domain.ErrorOp(err),
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
		if code == domain.EINTERNAL {
			telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{
				"op":   domain.ErrorOp(err),
				"path": r.URL.Path,
			})
		}
	} else {
		logger.Info("request rejected", attrs...)
	}

	body := Envelope{
		"success": false,
		"message": domain.ErrorMessage(err),
	}
	if fields := domain.GetValidationFields(err); len(fields) > 0 {
		body["errors"] = fields
	}
	JSON(w, status, body)
}

// NotFoundResponse writes a 404 with a generic message.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.ENOTFOUND, "", "Resource not found"))
}

// InternalErrorResponse writes a 500. A nil err is replaced with a generic one.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ErrorResponse(w, r, domain.Internal(err, "", "internal error"))
}
