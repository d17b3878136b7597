package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AuthServerURL string
	ShedURL       string
	ClientID      string
	ClientSecret  string

	Env                 string
	LogLevel            string
	LogFormat           string
	Port                int
	ShutdownGracePeriod time.Duration
}

func LoadConfig() Config {
	return Config{
		AuthServerURL:       getEnvOrDefault("AUTH_SERVER_URL", "http://localhost:9000"),
		ShedURL:             getEnvOrDefault("SHED_SERVICE_URL", "http://localhost:9001"),
		ClientID:            getEnvOrDefault("OAUTH_CLIENT_ID", "party-guest-app"),
		ClientSecret:        getEnvOrDefault("OAUTH_CLIENT_SECRET", "party-secret-key"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 9003),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
