package auth

import (
	"testing"

	"github.com/helpdesk-mx/soporte/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, expiresAt, err := tm.GenerateToken("user-1", domain.UserRoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatal("no expiry set")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Role != domain.UserRoleUser {
		t.Errorf("role = %q, want user", claims.Role)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, _, err := tm.GenerateToken("user-1", domain.UserRoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewTokenManager("different", 5)
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("token signed with another secret should not parse")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("password", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := ComparePassword(hash, "password"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}
