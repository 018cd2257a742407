package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	GinMode              string
	LogLevel             string
	DBDriver             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	SessionJWTSecret     string
	WebhookSigningSecret string
}

func Load() *Config {
	// Missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		GinMode:              getEnv("GIN_MODE", "debug"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DBDriver:             getEnv("DB_DRIVER", "postgres"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "lawncare"),
		DBPassword:           getEnv("DB_PASSWORD", "lawncare"),
		DBName:               getEnv("DB_NAME", "lawncare_ops"),
		SessionJWTSecret:     getEnv("SESSION_JWT_SECRET", "default-secret-key-change-me"),
		WebhookSigningSecret: getEnv("CLERK_WEBHOOK_SIGNING_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
