package auth

import (
	"testing"
	"time"
)

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier("studio", "secret-pass", "admin-key", "test-signing-secret", time.Hour)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return v
}

func TestLoginAndParse(t *testing.T) {
	v := newTestVerifier(t)

	token, err := v.Login("studio", "secret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := v.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Username != "studio" {
		t.Fatalf("expected username studio, got %q", claims.Username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	v := newTestVerifier(t)

	if _, err := v.Login("studio", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := v.Login("intruder", "secret-pass"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong user, got %v", err)
	}
}

func TestParseRejectsForeignToken(t *testing.T) {
	v := newTestVerifier(t)
	other, err := NewVerifier("studio", "secret-pass", "admin-key", "different-secret", time.Hour)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	token, _ := other.GenerateToken("studio")
	if _, err := v.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("foreign token must be rejected, got %v", err)
	}
	if _, err := v.ParseToken("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("garbage token must be rejected, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	v, err := NewVerifier("studio", "secret-pass", "admin-key", "test-signing-secret", -time.Minute)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	token, _ := v.GenerateToken("studio")
	if _, err := v.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}

func TestCheckAdminKey(t *testing.T) {
	v := newTestVerifier(t)

	if !v.CheckAdminKey("admin-key") {
		t.Fatalf("correct admin key rejected")
	}
	if v.CheckAdminKey("wrong") || v.CheckAdminKey("") {
		t.Fatalf("wrong admin key accepted")
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatalf("hash does not verify")
	}
	if CheckPassword(hash, "other") {
		t.Fatalf("wrong password verified")
	}
}
