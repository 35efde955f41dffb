package utils

import (
	"strings"
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := UserIDFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("user id = %q, want user-123", userID)
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := GenerateToken("user-123"); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestUserIDFromTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flip a character in the signature
	tampered := token[:len(token)-2] + strings.Repeat("x", 2)
	if _, err := UserIDFromToken(tampered); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestUserIDFromTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := UserIDFromToken("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
