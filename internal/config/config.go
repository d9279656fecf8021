package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	AppEnv       string // "development" or "production"
	DatabasePath string

	JWTSecret string
	TokenTTL  time.Duration

	// Inference backend: "rules" or "openai".
	InferenceBackend string
	OpenAIAPIKey     string

	// Storage backend: "local" or "s3".
	StorageBackend string
	UploadDir      string
	S3Bucket       string
	S3Region       string

	RenderPDF bool
	ReportDir string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		AppEnv:           getEnv("APP_ENV", "development"),
		DatabasePath:     getEnv("DATABASE_PATH", "./medassist.db"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-key"),
		TokenTTL:         time.Duration(ttlHours) * time.Hour,
		InferenceBackend: getEnv("INFERENCE_BACKEND", "rules"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		StorageBackend:   getEnv("STORAGE_BACKEND", "local"),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		RenderPDF:        getEnv("REPORT_RENDER_PDF", "0") == "1",
		ReportDir:        getEnv("REPORT_DIR", "./reports"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
