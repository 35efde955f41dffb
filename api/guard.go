package api

import (
	"net/http"
	"strings"

	"github.com/agriaide/agriaide-backend/utils"
)

// SessionState tags where a session is in its lifecycle. Resolving exists for
// clients whose identity check has not completed yet; on the server a bearer
// token resolves synchronously, so SessionFromRequest never returns it.
type SessionState int

const (
	StateResolving SessionState = iota
	StateAnonymous
	StateAuthenticated
)

// Session is the explicit session object handed to the guard instead of an
// implicit global.
type Session struct {
	State  SessionState
	UserID string
}

// Decision is the outcome of a route-guard evaluation.
type Decision struct {
	Allow      bool
	RedirectTo string
}

const (
	// PublicRoute is the landing/auth route anonymous sessions land on.
	PublicRoute = "/"
	// DefaultProtectedRoute is where already-authenticated sessions are sent
	// when they request the public route.
	DefaultProtectedRoute = "/analyze"
)

var protectedPrefixes = []string{"/history", "/profile", "/account"}

func isProtectedRoute(route string) bool {
	for _, prefix := range protectedPrefixes {
		if route == prefix || strings.HasPrefix(route, prefix+"/") {
			return true
		}
	}
	return false
}

// Guard is the pure route-guard decision: it never performs navigation
// itself. A resolving session is never allowed anywhere; callers must wait
// for resolution and evaluate again.
func Guard(s Session, route string) Decision {
	if s.State == StateResolving {
		return Decision{Allow: false}
	}
	if isProtectedRoute(route) && s.State != StateAuthenticated {
		return Decision{Allow: false, RedirectTo: PublicRoute}
	}
	if route == PublicRoute && s.State == StateAuthenticated {
		return Decision{Allow: false, RedirectTo: DefaultProtectedRoute}
	}
	return Decision{Allow: true}
}

// SessionFromRequest resolves the bearer token into a tagged session state.
func SessionFromRequest(r *http.Request) Session {
	token := bearerToken(r)
	if token == "" {
		return Session{State: StateAnonymous}
	}
	userID, err := utils.UserIDFromToken(token)
	if err != nil {
		return Session{State: StateAnonymous}
	}
	return Session{State: StateAuthenticated, UserID: userID}
}

// SessionHandler reports the resolved session so clients can finish their
// splash/resolving state and run their own route guards.
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := SessionFromRequest(r)
	if session.State == StateAuthenticated {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"state":   "authenticated",
			"user_id": session.UserID,
		})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"state": "anonymous"})
}
