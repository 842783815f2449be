package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/todo-api/internal/service"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	// ErrMessageUnprocessable is the generic body for unexpected failures. Internal details never reach clients.
	ErrMessageUnprocessable = "request could not be processed"
	// ErrMessageNotFound is shared by "absent" and "not yours" so the two cannot be told apart.
	ErrMessageNotFound = "not found"
)

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	out := map[string]any{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	writeJSON(w, status, out)
}

// writeServiceError maps service errors to status codes in one place.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		JSONValidationError(w, "validation failed", verr.Fields, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		JSONError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		JSONError(w, ErrMessageNotFound, http.StatusNotFound)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err)
		JSONError(w, ErrMessageUnprocessable, http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			JSONError(w, "request body too large", http.StatusBadRequest)
			return false
		}
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}
