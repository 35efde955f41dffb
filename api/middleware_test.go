package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agriaide/agriaide-backend/utils"
)

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/history", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run with an invalid token")
	})

	r := httptest.NewRequest("GET", "/history", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthPopulatesUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken("user-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var gotUserID string
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
	})

	r := httptest.NewRequest("GET", "/history", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUserID != "user-42" {
		t.Errorf("user id = %q, want user-42", gotUserID)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	var sawUser bool
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		_, err := GetUserIDFromContext(r.Context())
		sawUser = err == nil
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("POST", "/analyze", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if sawUser {
		t.Error("anonymous request should not carry a user id")
	}
}
