package main

import (
	"testing"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/config"
)

func issueToken(t *testing.T, cfg config.Config, userID int) string {
	t.Helper()
	ts, err := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	tok, err := ts.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}
