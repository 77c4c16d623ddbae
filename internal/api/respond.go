package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/example/storefront/internal/apperr"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondError maps the domain error taxonomy onto HTTP status codes.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *apperr.ValidationError
		notFoundErr   *apperr.NotFoundError
		permissionErr *apperr.PermissionError
		unauthErr     *apperr.UnauthenticatedError
	)

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: validationErr.Fields})
	case errors.As(err, &notFoundErr):
		respondJSONError(w, notFoundErr.Error(), http.StatusNotFound)
	case errors.As(err, &unauthErr):
		respondJSONError(w, "authentication required", http.StatusUnauthorized)
	case errors.As(err, &permissionErr):
		respondJSONError(w, "admin role required", http.StatusForbidden)
	default:
		log.Printf("[API] %s %s failed: %v", r.Method, r.URL.Path, err)
		respondJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Invalid("body", "must be valid JSON: "+err.Error())
	}
	return nil
}
