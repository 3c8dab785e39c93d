package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver    string
	DatabaseDSN string
	SQLitePath  string
	Port        string
	GinMode     string
	JWTSecret   string
	AIAPIKey    string
	AIBaseURL   string
	AIModel     string
}

func Load() *Config {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	return &Config{
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseDSN: getEnv("DATABASE_DSN", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "project_mgmt.db"),
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		JWTSecret:   getEnv("JWT_SECRET_KEY", "dev-secret-key"),
		AIAPIKey:    getEnv("AI_API_KEY", ""),
		AIBaseURL:   getEnv("AI_BASE_URL", ""),
		AIModel:     getEnv("AI_MODEL", "llama-3.1-8b-instant"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
