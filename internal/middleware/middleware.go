package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/verdant/internal/domain"
)

var statusByCode = map[string]int{
	domain.EINVALID:   http.StatusBadRequest,
	domain.ECONFLICT:  http.StatusBadRequest,
	domain.ESTOCK:     http.StatusBadRequest,
	domain.EPAYMENT:   http.StatusBadRequest,
	domain.EUNAUTH:    http.StatusUnauthorized,
	domain.ENOTFOUND:  http.StatusNotFound,
	domain.ETOOLARGE:  http.StatusRequestEntityTooLarge,
	domain.ERATELIMIT: http.StatusTooManyRequests,
	domain.EUPSTREAM:  http.StatusBadGateway,
}

// ErrorCodeToHTTPStatus maps a domain error code to its HTTP status.
// Unknown codes are 500.
func ErrorCodeToHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// reject answers with the {"success":false,"message":...} envelope used by
// handler.ErrorResponse. It lives here because handler imports this package.
func reject(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	level := slogLevelFor(status)
	GetLogger(r.Context()).Log(r.Context(), level, "request rejected",
		"error", err, "code", code, "status", status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{Message: domain.ErrorMessage(err)})
}

func respondTooManyRequests(w http.ResponseWriter, r *http.Request) {
	reject(w, r, domain.Errorf(domain.ERATELIMIT, "", "Too many requests"))
}

func respondTooLarge(w http.ResponseWriter, r *http.Request, message string) {
	reject(w, r, domain.Errorf(domain.ETOOLARGE, "", "%s", message))
}

func slogLevelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelInfo
}
