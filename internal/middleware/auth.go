package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/go-chi/chi/v5"
)

type key string

const (
	identityKey       key = "identity"
	identityHolderKey key = "identity_holder"
)

// identityHolder lets outer middleware (RequestLog) see the identity set by Authenticate.
type identityHolder struct {
	id auth.Identity
}

func withIdentityHolder(ctx context.Context, h *identityHolder) context.Context {
	return context.WithValue(ctx, identityHolderKey, h)
}

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	VerifyToken(token string) (auth.Identity, error)
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok && id.UserID > 0
}

// Authenticate requires "Authorization: Bearer <token>" and stores the verified identity in the request context.
func Authenticate(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				writeError(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			id, err := v.VerifyToken(token)
			if err != nil {
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if h, ok := r.Context().Value(identityHolderKey).(*identityHolder); ok {
				h.id = id
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// SelfOnly rejects requests whose path parameter param is not the authenticated user's id.
// It must run after Authenticate and before any handler touches storage.
func SelfOnly(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				writeError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			target, err := strconv.Atoi(chi.URLParam(r, param))
			if err != nil {
				writeError(w, "invalid user id", http.StatusBadRequest)
				return
			}
			if target != id.UserID {
				writeError(w, "forbidden: you can only modify your own account", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
