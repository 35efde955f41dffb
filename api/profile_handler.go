package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/agriaide/agriaide-backend/config"
	"github.com/agriaide/agriaide-backend/models"
	"github.com/agriaide/agriaide-backend/utils"
)

// ProfileHandler reads or merge-updates the authenticated user's profile.
// Updates only touch the submitted fields; an empty form never clobbers
// existing values.
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Profile API]")

	userIDStr, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid user ID", http.StatusUnauthorized)
		return
	}

	collection := utils.GetCollection(config.DBName, "users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		var user models.User
		if err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
			} else {
				utils.RespondError(w, &logMessageBuilder, "Database error", http.StatusInternalServerError)
			}
			return
		}
		user.PhotoURL = utils.PresignPhotoURL(r.Context(), user.PhotoURL)
		utils.RespondJSON(w, http.StatusOK, user)

	case http.MethodPut:
		// Parse multipart form (max 10MB) for optional name + photo
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
			return
		}

		set := bson.M{"updated_at": time.Now()}

		if name := strings.TrimSpace(r.FormValue("name")); name != "" {
			set["name"] = name
		}

		if file, header, err := r.FormFile("photo"); err == nil {
			defer file.Close()

			ext := filepath.Ext(header.Filename)
			objectKey := fmt.Sprintf("avatars/%s/%s%s", userIDStr, uuid.New().String(), ext)

			key, err := utils.UploadFileToS3(r.Context(), file, objectKey, header.Header.Get("Content-Type"))
			if err != nil {
				utils.RespondError(w, &logMessageBuilder, "Error uploading profile photo", http.StatusInternalServerError)
				return
			}
			set["photo_url"] = key
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Uploaded profile photo %s", key))
		}

		if len(set) == 1 {
			utils.RespondError(w, &logMessageBuilder, "Nothing to update", http.StatusBadRequest)
			return
		}

		if _, err := collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set}); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Failed to update profile", http.StatusInternalServerError)
			return
		}

		var user models.User
		if err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Failed to load updated profile", http.StatusInternalServerError)
			return
		}
		user.PhotoURL = utils.PresignPhotoURL(r.Context(), user.PhotoURL)

		utils.AddToLogMessage(&logMessageBuilder, "Profile updated successfully")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Profile updated successfully",
			"user":    user,
		})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ChangePasswordRequest represents the payload for changing the password of a
// signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePasswordHandler changes the password of the authenticated user
func ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Change Password API]")

	if r.Method != http.MethodPut {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userIDStr, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid user ID", http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		utils.RespondError(w, &logMessageBuilder, "Current and new passwords are required", http.StatusBadRequest)
		return
	}
	if len(req.NewPassword) < 6 {
		utils.RespondError(w, &logMessageBuilder, "Password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection(config.DBName, "users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
		return
	}

	if user.Provider != "password" {
		utils.RespondError(w, &logMessageBuilder, "Password is managed by your sign-in provider", http.StatusBadRequest)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Current password is incorrect", http.StatusUnauthorized)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	update := bson.M{"$set": bson.M{"password": string(hashedPassword), "updated_at": time.Now()}}
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to update password", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Password changed successfully")
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
