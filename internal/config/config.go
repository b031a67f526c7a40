package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// How many months ahead a new budget seeds its month list with.
	InitialMonths int

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

var appConfig *Config

// Load loads configuration from environment variables, reading a .env
// file first if one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		InitialMonths: getEnvInt("INITIAL_MONTHS", 12),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "budgetapp"),
		DBPassword: getEnv("DB_PASSWORD", "budgetapp"),
		DBName:     getEnv("DB_NAME", "budgetapp"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		log.Printf("Warning: invalid %s value %q, falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
