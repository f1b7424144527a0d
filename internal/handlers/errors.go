package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giglegig/portfolio-api/internal/models"
	pkghttp "github.com/giglegig/portfolio-api/pkg/http"
)

// writeServiceError maps service-layer sentinel errors onto HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidOrExpiredCode):
		pkghttp.WriteError(w, http.StatusUnauthorized, "invalid_code", "Invalid or expired verification code")
	case errors.Is(err, models.ErrEmailDelivery):
		pkghttp.WriteError(w, http.StatusInternalServerError, "email_delivery_failed", "Failed to send verification email")
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, "Invalid credentials")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "Access denied")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Resource already exists")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid request")
	default:
		pkghttp.WriteInternalError(w, "An internal error occurred")
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
