package handlers

import (
	"context"
	"net/http"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/models"
	"github.com/crucial707/todo-api/internal/service"
)

// Accounts is what the auth and user handlers need from the user service.
type Accounts interface {
	Create(ctx context.Context, in service.NewUser) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, actor auth.Identity, id int, patch service.UserPatch) (*models.User, error)
	Delete(ctx context.Context, actor auth.Identity, id int) error
}

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users Accounts
}

// ==========================
// Register (POST /users)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.NewUser
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.Users.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// Login (POST /login)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	token, err := h.Users.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
