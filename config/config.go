package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MongoURI               string
	DBName                 string
	Port                   string
	GoogleClientID         string
	GoogleClientSecret     string
	GoogleRedirectURL      string
	GeminiAPIKey           string
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	AWSRegion              string
	AWSBucketName          string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	DBName = os.Getenv("DB_NAME")
	if DBName == "" {
		DBName = "agriaide"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	GoogleRedirectURL = os.Getenv("GOOGLE_REDIRECT_URL")
	if GoogleRedirectURL == "" {
		GoogleRedirectURL = "http://localhost:8080/auth/google/callback"
	}

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	// Cloudinary credentials are checked at upload time so the rest of
	// the API keeps working without them.
	CloudinaryCloudName = os.Getenv("CLOUDINARY_CLOUD_NAME")
	CloudinaryUploadPreset = os.Getenv("CLOUDINARY_UPLOAD_PRESET")

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "ap-south-1"
	}
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
}
