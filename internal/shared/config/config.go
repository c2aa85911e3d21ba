package config

import (
	"os"
	"strconv"
	"strings"

	"resume-optimizer/internal/shared/telemetry"
)

// DefaultMaxUploadBytes caps resume uploads when MAX_UPLOAD_BYTES is unset.
const DefaultMaxUploadBytes = 10 << 20

// Config holds process configuration read from the environment.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	MaxUploadBytes  int64

	// Object storage.
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	// Analysis backend.
	LLMProvider string
	LLMModel    string

	DatabaseURL string

	// Google sign-in.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with dev defaults.
// Local .env files are applied first, best effort.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	if env == "production" && dbURL == "" {
		telemetry.Error("config.missing_database_url", map[string]any{"env": env})
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       os.Getenv("AWS_REGION"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Prefix:        os.Getenv("S3_PREFIX"),
		SSEKMSKeyID:     os.Getenv("SSE_KMS_KEY_ID"),

		LLMProvider: getEnv("LLM_PROVIDER", "heuristic"),
		LLMModel:    os.Getenv("LLM_MODEL"),

		DatabaseURL: dbURL,

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		UIRedirectURL:      os.Getenv("UI_REDIRECT_URL"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "s3") {
		return "s3"
	}
	return "local"
}
