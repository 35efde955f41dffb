package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/agriaide/agriaide-backend/api"
	"github.com/agriaide/agriaide-backend/config"
	"github.com/agriaide/agriaide-backend/diagnosis"
	"github.com/agriaide/agriaide-backend/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer utils.DisconnectMongo()

	// Detached history writes report failures here instead of failing the
	// request that started them.
	utils.OnWriteError(func(collection string, err error) {
		log.Printf("[WRITE ERROR] collection=%s: %v", collection, err)
	})

	api.Diagnoser = diagnosis.NewGeminiDiagnoser()

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	// Analysis pipeline: inference is open to anonymous users, only the
	// history write is gated on identity.
	http.HandleFunc("/analyze", corsMiddleware(api.OptionalAuth(api.AnalyzeHandler)))

	// History (protected)
	http.HandleFunc("/history", corsMiddleware(api.RequireAuth(api.HistoryHandler)))
	http.HandleFunc("/history/{id}", corsMiddleware(api.RequireAuth(api.HistoryItemHandler)))

	// Profile (protected)
	http.HandleFunc("/profile", corsMiddleware(api.RequireAuth(api.ProfileHandler)))
	http.HandleFunc("/profile/password", corsMiddleware(api.RequireAuth(api.ChangePasswordHandler)))

	// Auth Routes
	http.HandleFunc("/auth/signup", corsMiddleware(api.SignupHandler))
	http.HandleFunc("/auth/login", corsMiddleware(api.LoginHandler))
	http.HandleFunc("/auth/verify-otp", corsMiddleware(api.VerifyOTPHandler))
	http.HandleFunc("/auth/forgot-password", corsMiddleware(api.ForgotPasswordHandler))
	http.HandleFunc("/auth/reset-password", corsMiddleware(api.ResetPasswordHandler))
	http.HandleFunc("/auth/google/login", corsMiddleware(api.GoogleLoginHandler))
	http.HandleFunc("/auth/google/callback", corsMiddleware(api.GoogleCallbackHandler))

	// Session resolution for client route guards
	http.HandleFunc("/session", corsMiddleware(api.SessionHandler))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
