package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/agriaide/agriaide-backend/utils"
)

type contextKey string

const userIDKey contextKey = "user_id"

// GetUserIDFromContext returns the authenticated user's ID, set by the auth middleware
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user not found in context")
	}
	return userID, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// RequireAuth rejects requests without a valid token before the handler runs
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			utils.RespondError(w, nil, "Authorization token required", http.StatusUnauthorized)
			return
		}

		userID, err := utils.UserIDFromToken(token)
		if err != nil {
			utils.RespondError(w, nil, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// OptionalAuth populates the user ID when a valid token is present but lets
// anonymous requests through. Used on /analyze: inference is open to everyone,
// only the history write is gated on identity.
func OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if userID, err := utils.UserIDFromToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
		}
		next(w, r)
	}
}
