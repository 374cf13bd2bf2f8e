package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret   string
	JWTTTLHours int

	// Playback history rows older than this many days are removed by the
	// nightly retention sweep. Canonical value is 7.
	HistoryRetentionDays int

	// Hard ceiling for the per-page size of any paginated endpoint.
	MaxPageSize int

	LogLevel      string
	LogOutputPath string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // no hardcoded default for the password
		DBName:     getEnv("DB_NAME", "wavefm"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret:   getEnv("JWT_SECRET", "dev-only-secret-change-me"),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 24),

		HistoryRetentionDays: getEnvInt("HISTORY_RETENTION_DAYS", 7),
		MaxPageSize:          getEnvInt("MAX_PAGE_SIZE", 20),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogOutputPath: getEnv("LOG_OUTPUT_PATH", ""),
	}
}
