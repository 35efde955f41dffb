package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/agriaide/agriaide-backend/config"
)

// cloudinaryUploadURL is a variable so tests can point it at a fake server.
var cloudinaryUploadURL = "https://api.cloudinary.com/v1_1/%s/image/upload"

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadToCloudinary uploads image bytes as an unsigned multipart POST and
// returns the durable secure URL. Credentials are read at call time and
// checked before any network I/O; a placeholder preset left over from a
// template .env counts as missing. Single attempt, no retry.
func UploadToCloudinary(ctx context.Context, filename string, data []byte) (string, error) {
	cloudName := config.CloudinaryCloudName
	uploadPreset := config.CloudinaryUploadPreset
	if cloudName == "" || uploadPreset == "" || uploadPreset == "your_upload_preset" {
		return "", fmt.Errorf("cloudinary is not configured: set CLOUDINARY_CLOUD_NAME and CLOUDINARY_UPLOAD_PRESET in .env")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %v", err)
	}
	if err := writer.WriteField("upload_preset", uploadPreset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %v", err)
	}

	url := fmt.Sprintf(cloudinaryUploadURL, cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %v", err)
	}

	var result cloudinaryResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unexpected upload response (status %d)", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if result.Error.Message != "" {
			return "", fmt.Errorf("%s", result.Error.Message)
		}
		return "", fmt.Errorf("image upload failed with status %d", resp.StatusCode)
	}

	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}
	return result.SecureURL, nil
}
