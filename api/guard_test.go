package api

import (
	"net/http/httptest"
	"testing"

	"github.com/agriaide/agriaide-backend/utils"
)

func TestGuardRedirectsAnonymousFromProtectedRoutes(t *testing.T) {
	session := Session{State: StateAnonymous}
	for _, route := range []string{"/history", "/history/abc123", "/profile", "/profile/password", "/account"} {
		decision := Guard(session, route)
		if decision.Allow {
			t.Errorf("route %s: anonymous session was allowed", route)
		}
		if decision.RedirectTo != PublicRoute {
			t.Errorf("route %s: redirect = %q, want %q", route, decision.RedirectTo, PublicRoute)
		}
	}
}

func TestGuardRedirectsAuthenticatedFromPublicRoute(t *testing.T) {
	decision := Guard(Session{State: StateAuthenticated, UserID: "u1"}, PublicRoute)
	if decision.Allow {
		t.Error("authenticated session was allowed on the public route")
	}
	if decision.RedirectTo != DefaultProtectedRoute {
		t.Errorf("redirect = %q, want %q", decision.RedirectTo, DefaultProtectedRoute)
	}
}

func TestGuardAllowsExpectedRoutes(t *testing.T) {
	cases := []struct {
		session Session
		route   string
	}{
		{Session{State: StateAuthenticated, UserID: "u1"}, "/history"},
		{Session{State: StateAuthenticated, UserID: "u1"}, "/profile"},
		{Session{State: StateAuthenticated, UserID: "u1"}, "/analyze"},
		{Session{State: StateAnonymous}, PublicRoute},
		{Session{State: StateAnonymous}, "/analyze"},
	}
	for _, tc := range cases {
		if decision := Guard(tc.session, tc.route); !decision.Allow {
			t.Errorf("state=%v route=%s: expected allow, got redirect to %q", tc.session.State, tc.route, decision.RedirectTo)
		}
	}
}

func TestGuardHoldsResolvingSessions(t *testing.T) {
	for _, route := range []string{PublicRoute, "/history", "/analyze"} {
		decision := Guard(Session{State: StateResolving}, route)
		if decision.Allow || decision.RedirectTo != "" {
			t.Errorf("route %s: resolving session should be held, got %+v", route, decision)
		}
	}
}

func TestSessionFromRequest(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := httptest.NewRequest("GET", "/session", nil)
	if s := SessionFromRequest(r); s.State != StateAnonymous {
		t.Errorf("no token: state = %v, want anonymous", s.State)
	}

	r = httptest.NewRequest("GET", "/session", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	if s := SessionFromRequest(r); s.State != StateAnonymous {
		t.Errorf("bad token: state = %v, want anonymous", s.State)
	}

	token, err := utils.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r = httptest.NewRequest("GET", "/session", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	s := SessionFromRequest(r)
	if s.State != StateAuthenticated || s.UserID != "user-1" {
		t.Errorf("valid token: got %+v", s)
	}
}
