package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestTokens(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	s, err := NewTokenService([]byte("test-secret"), ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return s
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	if _, err := NewTokenService(nil, time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("got %v, want ErrMissingSecret", err)
	}
}

func TestTokenService_IssueVerify(t *testing.T) {
	s := newTestTokens(t, time.Hour)

	tok, err := s.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	id, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != 42 {
		t.Errorf("UserID: got %d, want 42", id.UserID)
	}
}

func TestTokenService_Expired(t *testing.T) {
	s := newTestTokens(t, time.Hour)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := s.Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	s.now = time.Now
	if _, err := s.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify expired: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	a := newTestTokens(t, time.Hour)
	b, _ := NewTokenService([]byte("other-secret"), time.Hour)

	tok, _ := a.Issue(1)
	if _, err := b.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	s := newTestTokens(t, time.Hour)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := s.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): got %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	s := newTestTokens(t, time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := s.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	s := newTestTokens(t, time.Hour)

	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"}).
		SignedString([]byte("test-secret"))
	if _, err := s.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_NonNumericSubject(t *testing.T) {
	s := newTestTokens(t, time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if _, err := s.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}
