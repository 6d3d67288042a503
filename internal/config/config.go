package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string

	// Auth
	AuthJWKSURL string

	// Storage backend: "postgres", "redis" or "memory"
	StorageBackend string
	DatabaseURL    string
	RedisURL       string

	// Suggestion endpoint
	SuggestionAPIKey  string
	SuggestionModel   string
	SuggestionBaseURL string

	// Export / reminder email via SES
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// Reminders
	RemindersEnabled bool

	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),

		AuthJWKSURL: getEnv("AUTH_JWKS_URL", ""),

		StorageBackend: getEnv("STORAGE_BACKEND", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),

		SuggestionAPIKey:  getEnv("SUGGESTION_API_KEY", ""),
		SuggestionModel:   getEnv("SUGGESTION_MODEL", "gpt-4o-mini"),
		SuggestionBaseURL: getEnv("SUGGESTION_BASE_URL", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "ABC Tracker"),

		RemindersEnabled: getEnv("REMINDERS_ENABLED", "true") == "true",

		// Default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the records table prefix based on environment
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
