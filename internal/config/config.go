package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// BackendMemory keeps content in memory only
const BackendMemory = "memory"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port            string
	AdminPassphrase string

	// Content configuration
	Locale          string
	NotificationTTL time.Duration
	MailDelay       time.Duration

	// Text generation
	GenAIAPIKey string
	GenAIModel  string

	// Logging
	LogLevel  string
	LogFormat string

	// Snapshot persistence
	StoreBackend      string // memory, sqlite, sqlite-cgo, mysql, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
}

// Load loads configuration from the environment. If ENV_FILE names a file,
// it is read first; variables already set win.
func Load() (*Config, error) {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		AdminPassphrase:   getEnv("ADMIN_PASSPHRASE", ""),
		Locale:            getEnv("LOCALE", "en"),
		NotificationTTL:   getEnvAsDuration("NOTIFICATION_TTL", 4*time.Second),
		MailDelay:         getEnvAsDuration("MAIL_DELAY", 1500*time.Millisecond),
		GenAIAPIKey:       getEnv("GENAI_API_KEY", os.Getenv("API_KEY")),
		GenAIModel:        getEnv("GENAI_MODEL", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		StoreBackend:      getEnv("STORE_BACKEND", BackendMemory),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
	}

	// Validate required fields
	if cfg.AdminPassphrase == "" {
		return nil, fmt.Errorf("ADMIN_PASSPHRASE is required")
	}
	if cfg.StoreBackend != BackendMemory && cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required when STORE_BACKEND is %s", cfg.StoreBackend)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("4s") or bare milliseconds ("4000")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
