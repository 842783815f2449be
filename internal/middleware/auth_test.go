package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/go-chi/chi/v5"
)

type stubVerifier map[string]int

func (s stubVerifier) VerifyToken(token string) (auth.Identity, error) {
	id, ok := s[token]
	if !ok {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return auth.Identity{UserID: id}, nil
}

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "no identity", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(strings.Repeat("x", id.UserID)))
}

func TestAuthenticate(t *testing.T) {
	h := Authenticate(stubVerifier{"good": 3})(http.HandlerFunc(echoIdentity))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status: got %d, want %d (body %s)", rec.Code, tc.status, rec.Body.String())
			}
			if tc.status == http.StatusOK && rec.Body.String() != "xxx" {
				t.Errorf("identity not propagated: body %q", rec.Body.String())
			}
			if tc.status == http.StatusUnauthorized && !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("expected JSON error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestSelfOnly(t *testing.T) {
	reached := false
	r := chi.NewRouter()
	r.With(Authenticate(stubVerifier{"tok7": 7}), SelfOnly("id")).
		Put("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})

	cases := []struct {
		path   string
		status int
	}{
		{"/users/7", http.StatusOK},
		{"/users/8", http.StatusForbidden},
		{"/users/abc", http.StatusBadRequest},
	}
	for _, tc := range cases {
		reached = false
		req := httptest.NewRequest(http.MethodPut, tc.path, nil)
		req.Header.Set("Authorization", "Bearer tok7")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tc.status {
			t.Errorf("%s: status got %d, want %d", tc.path, rec.Code, tc.status)
		}
		if reached != (tc.status == http.StatusOK) {
			t.Errorf("%s: handler reached=%v", tc.path, reached)
		}
	}
}

func TestSelfOnly_NoIdentity(t *testing.T) {
	h := SelfOnly("id")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without identity")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/1", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestIdentityFrom_ZeroIdentity(t *testing.T) {
	ctx := WithIdentity(context.Background(), auth.Identity{})
	if _, ok := IdentityFrom(ctx); ok {
		t.Error("zero identity should not count as authenticated")
	}
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
}
