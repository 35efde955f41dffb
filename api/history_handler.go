package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agriaide/agriaide-backend/config"
	"github.com/agriaide/agriaide-backend/models"
	"github.com/agriaide/agriaide-backend/utils"
)

// HistoryResponse wraps the owner's analysis list
type HistoryResponse struct {
	Analyses []models.PlantAnalysis `json:"analyses"`
	Total    int                    `json:"total"`
}

// HistoryHandler lists the owner's analyses, newest first
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, nil, "Unauthorized", http.StatusUnauthorized)
		return
	}

	collection := utils.GetCollection(config.DBName, "analyses")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "analysis_date", Value: -1}}) // Show latest first

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch history", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var analyses []models.PlantAnalysis
	if err = cursor.All(ctx, &analyses); err != nil {
		utils.RespondError(w, nil, "Failed to decode history", http.StatusInternalServerError)
		return
	}

	// The search box filters the already-fetched set; it is deliberately not
	// pushed into the query.
	analyses = filterAnalyses(analyses, r.URL.Query().Get("q"))

	// Ensure empty slice is returned as [] instead of null
	if analyses == nil {
		analyses = []models.PlantAnalysis{}
	}

	utils.RespondJSON(w, http.StatusOK, HistoryResponse{Analyses: analyses, Total: len(analyses)})
}

// filterAnalyses keeps records whose plant type or disease label contains the
// query, case-insensitively. An empty query keeps everything.
func filterAnalyses(analyses []models.PlantAnalysis, query string) []models.PlantAnalysis {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return analyses
	}

	var filtered []models.PlantAnalysis
	for _, a := range analyses {
		if strings.Contains(strings.ToLower(a.PlantType), query) ||
			strings.Contains(strings.ToLower(a.DiseaseDetected), query) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// HistoryItemHandler fetches or hard-deletes a single owned analysis
func HistoryItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[History Item API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	analysisID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid analysis ID", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection(config.DBName, "analyses")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ownership is enforced in the filter itself so another user's record
	// behaves exactly like a missing one.
	filter := bson.M{"_id": analysisID, "user_id": userID}

	switch r.Method {
	case http.MethodGet:
		var analysis models.PlantAnalysis
		if err := collection.FindOne(ctx, filter).Decode(&analysis); err != nil {
			if err == mongo.ErrNoDocuments {
				utils.RespondError(w, &logMessageBuilder, "Analysis not found", http.StatusNotFound)
			} else {
				utils.RespondError(w, &logMessageBuilder, "Failed to fetch analysis", http.StatusInternalServerError)
			}
			return
		}
		utils.RespondJSON(w, http.StatusOK, analysis)

	case http.MethodDelete:
		result, err := collection.DeleteOne(ctx, filter)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Failed to delete analysis", http.StatusInternalServerError)
			return
		}
		if result.DeletedCount == 0 {
			utils.RespondError(w, &logMessageBuilder, "Analysis not found", http.StatusNotFound)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Deleted analysis %s", analysisID.Hex()))
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Analysis deleted from your history"})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
