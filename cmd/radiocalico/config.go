package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL    string
	Addr           string
	AllowedOrigins []string
	StaticDir      string
	LogLevel       string
	LogFormat      string
}

func loadConfig() Config {
	_ = godotenv.Load()

	return Config{
		// The default matches the original deployment: a SQLite file next to
		// the binary. Point DATABASE_URL at postgres:// for a real instance.
		DatabaseURL:    envOrDefault("DATABASE_URL", "sqlite://radio.db"),
		Addr:           fmt.Sprintf(":%s", envOrDefault("PORT", "3000")),
		AllowedOrigins: parseAllowedOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		StaticDir:      envOrDefault("STATIC_DIR", "public"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
