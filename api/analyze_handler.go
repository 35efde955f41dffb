package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agriaide/agriaide-backend/config"
	"github.com/agriaide/agriaide-backend/diagnosis"
	"github.com/agriaide/agriaide-backend/models"
	"github.com/agriaide/agriaide-backend/utils"
)

const maxImageSize = 10 << 20 // 10 MB

// Diagnoser is the plant disease model used by AnalyzeHandler. Set in main;
// tests swap in a fake.
var Diagnoser diagnosis.Diagnoser

// Seams for tests; production wiring stays in utils.
var (
	uploadImage = utils.UploadToCloudinary

	insertAnalysis = func(record *models.PlantAnalysis) <-chan error {
		collection := utils.GetCollection(config.DBName, "analyses")
		return utils.InsertOneAsync("analyses", collection, record)
	}
)

// AnalyzeResponse is the result of one analysis attempt. Record is only set
// for authenticated requests; Saved reports whether a history write was
// started, not whether it succeeded (the write is non-blocking).
type AnalyzeResponse struct {
	Diagnosis *models.PlantDiagnosis `json:"diagnosis"`
	ImageURI  string                 `json:"imageUri"`
	Saved     bool                   `json:"saved"`
	Record    *models.PlantAnalysis  `json:"record,omitempty"`
}

// AnalyzeHandler runs the analysis pipeline: read the image, upload it for a
// durable URL, invoke the model, then append a history record for the owner.
// Upload failure aborts before inference; inference failure aborts before
// persistence. Nothing is retried, the caller re-submits if it wants another
// attempt.
func AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Analyze API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filename, imageData, err := readAnalyzeImage(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	imageFormat, err := utils.DetectImageFormat(imageData)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Received %s image (%d bytes)", imageFormat, len(imageData)))

	// 1. Upload to Cloudinary for a durable URL. The history record always
	// references this URL, never the inline encoding.
	imageURL, err := uploadImage(r.Context(), filename, imageData)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Image upload failed: %v", err))
		utils.RespondError(w, nil, err.Error(), http.StatusBadGateway)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, "Image uploaded")

	// 2. Invoke the model. This is the slow step; give it its own generous
	// timeout detached from proxies that might cut the request context short.
	diagCtx, cancelDiag := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancelDiag()

	result, err := Diagnoser.Diagnose(diagCtx, imageFormat, imageData)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Diagnosis failed: %v", err))
		if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "quota") {
			utils.RespondError(w, nil, "Quota exceeded. Please try again later.", http.StatusTooManyRequests)
		} else {
			utils.RespondError(w, nil, "Analysis failed: "+err.Error(), http.StatusBadGateway)
		}
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Diagnosis: plant=%s healthy=%t", result.PlantType, result.IsHealthy))

	response := AnalyzeResponse{
		Diagnosis: result,
		ImageURI:  imageURL,
	}

	// 3. Append to the owner's history. Anonymous analyses are allowed but
	// never persisted. The write is non-blocking: a failure is dispatched to
	// the write-error sink instead of failing this response.
	if userID, err := GetUserIDFromContext(r.Context()); err == nil {
		record := &models.PlantAnalysis{
			ID:             primitive.NewObjectID(),
			UserID:         userID,
			ImageURI:       imageURL,
			PlantDiagnosis: *result,
			AnalysisDate:   time.Now().UTC().Format(time.RFC3339),
		}
		insertAnalysis(record)
		response.Saved = true
		response.Record = record
		utils.AddToLogMessage(&logMessageBuilder, "History write started")
	}

	utils.RespondJSON(w, http.StatusOK, response)
}

// readAnalyzeImage accepts either a multipart "image" field or a JSON body
// with an inline-encoded "plantImageDataUri".
func readAnalyzeImage(r *http.Request) (string, []byte, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			return "", nil, fmt.Errorf("error parsing form data")
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			return "", nil, fmt.Errorf("missing image file (form field 'image')")
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
		if err != nil {
			return "", nil, fmt.Errorf("failed to read image")
		}
		if len(data) > maxImageSize {
			return "", nil, fmt.Errorf("image too large (max 10MB)")
		}
		return header.Filename, data, nil
	}

	var req struct {
		PlantImageDataURI string `json:"plantImageDataUri"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxImageSize*2)).Decode(&req); err != nil || req.PlantImageDataURI == "" {
		return "", nil, fmt.Errorf("provide an 'image' file or a 'plantImageDataUri' JSON field")
	}
	format, data, err := utils.ParseDataURI(req.PlantImageDataURI)
	if err != nil {
		return "", nil, err
	}
	return "capture." + format, data, nil
}
