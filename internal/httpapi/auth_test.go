package httpapi

import (
	"testing"
	"time"

	"dairypro/backend/internal/domain"
)

func TestLoginAndParseTokenRoundTrip(t *testing.T) {
	auth := NewAuthManager("test-secret-key", time.Hour)

	resp, err := auth.Login(domain.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", resp.Role)
	}

	actor, err := auth.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if actor.Username != "admin" || actor.Role != domain.RoleAdmin {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthManager("test-secret-key", time.Hour)

	if _, err := auth.ParseToken("not-a-token"); err == nil {
		t.Fatalf("expected error for garbage token")
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewAuthManager("issuer-secret-key", time.Hour)
	verifier := NewAuthManager("verifier-secret-key", time.Hour)

	resp, err := issuer.Login(domain.LoginRequest{Username: "staff", Password: "staff123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := verifier.ParseToken(resp.AccessToken); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestLoginRejectsEmptyPassword(t *testing.T) {
	auth := NewAuthManager("test-secret-key", time.Hour)

	if _, err := auth.Login(domain.LoginRequest{Username: "admin", Password: ""}); err == nil {
		t.Fatalf("expected empty password to be rejected")
	}
}
