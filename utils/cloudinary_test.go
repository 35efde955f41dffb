package utils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agriaide/agriaide-backend/config"
)

func withCloudinaryConfig(t *testing.T, cloudName, preset, uploadURL string) {
	t.Helper()
	prevName, prevPreset, prevURL := config.CloudinaryCloudName, config.CloudinaryUploadPreset, cloudinaryUploadURL
	config.CloudinaryCloudName = cloudName
	config.CloudinaryUploadPreset = preset
	if uploadURL != "" {
		cloudinaryUploadURL = uploadURL
	}
	t.Cleanup(func() {
		config.CloudinaryCloudName = prevName
		config.CloudinaryUploadPreset = prevPreset
		cloudinaryUploadURL = prevURL
	})
}

func TestUploadToCloudinaryFailsFastWithoutConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected when config is missing")
	}))
	defer server.Close()

	cases := []struct{ cloudName, preset string }{
		{"", ""},
		{"demo", ""},
		{"", "preset"},
		{"demo", "your_upload_preset"}, // placeholder from a template .env
	}
	for _, tc := range cases {
		withCloudinaryConfig(t, tc.cloudName, tc.preset, server.URL+"/v1_1/%s/image/upload")
		if _, err := UploadToCloudinary(context.Background(), "leaf.png", pngBytes); err == nil {
			t.Errorf("cloud=%q preset=%q: expected config error", tc.cloudName, tc.preset)
		}
	}
}

func TestUploadToCloudinarySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("server failed to parse multipart body: %v", err)
		}
		if got := r.FormValue("upload_preset"); got != "unsigned-preset" {
			t.Errorf("upload_preset = %q", got)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer file.Close()
		if data, _ := io.ReadAll(file); len(data) != len(pngBytes) {
			t.Errorf("file field has %d bytes, want %d", len(data), len(pngBytes))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url": "https://res.example.com/image/upload/v1/leaf.png"}`))
	}))
	defer server.Close()

	withCloudinaryConfig(t, "demo", "unsigned-preset", server.URL+"/v1_1/%s/image/upload")

	url, err := UploadToCloudinary(context.Background(), "leaf.png", pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://res.example.com/image/upload/v1/leaf.png" {
		t.Errorf("secure url = %q", url)
	}
}

func TestUploadToCloudinarySurfacesRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Invalid preset"}}`))
	}))
	defer server.Close()

	withCloudinaryConfig(t, "demo", "unsigned-preset", server.URL+"/v1_1/%s/image/upload")

	_, err := UploadToCloudinary(context.Background(), "leaf.png", pngBytes)
	if err == nil {
		t.Fatal("expected error from 400 response")
	}
	if err.Error() != "Invalid preset" {
		t.Errorf("error = %q, want the remote message %q", err.Error(), "Invalid preset")
	}
}

func TestUploadToCloudinaryMissingSecureURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	withCloudinaryConfig(t, "demo", "unsigned-preset", server.URL+"/v1_1/%s/image/upload")

	_, err := UploadToCloudinary(context.Background(), "leaf.png", pngBytes)
	if err == nil || !strings.Contains(err.Error(), "secure_url") {
		t.Fatalf("expected missing secure_url error, got %v", err)
	}
}
