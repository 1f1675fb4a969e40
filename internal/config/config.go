package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

type Config struct {
	BaseURL       string
	Landing       string
	SessionStore  string
	SessionPath   string
	SessionSecret string
	DatabaseURL   string
	RedisAddress  string
	RedisPassword string
	RedisPrefix   string
	LogLevel      string
	LogFormat     string
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:       getEnv("HOSTEL_API_BASE", "http://localhost:8080/api"),
		Landing:       getEnv("HOSTEL_LANDING", "index.html"),
		SessionStore:  getEnv("HOSTEL_SESSION_STORE", StoreSQLite),
		SessionPath:   getEnv("HOSTEL_SESSION_PATH", defaultSessionPath()),
		SessionSecret: os.Getenv("HOSTEL_SESSION_SECRET"),
		DatabaseURL:   os.Getenv("DB_CONNECTION_STRING"),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisPrefix:   getEnv("HOSTEL_REDIS_PREFIX", "hostel:"),
		LogLevel:      getEnv("HOSTEL_LOG_LEVEL", "info"),
		LogFormat:     getEnv("HOSTEL_LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(home, ".hostel", "session.db")
}
