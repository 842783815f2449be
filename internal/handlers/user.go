package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/todo-api/internal/middleware"
	"github.com/crucial707/todo-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Users Accounts
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// ==========================
// Update User (self only)
// ==========================
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r, "invalid user id")
	if !ok {
		return
	}

	var patch service.UserPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	user, err := h.Users.Update(r.Context(), actor, id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Delete User (self only)
// ==========================
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r, "invalid user id")
	if !ok {
		return
	}

	if err := h.Users.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} URL parameter, answering 400 with msg when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request, msg string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		JSONError(w, msg, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
