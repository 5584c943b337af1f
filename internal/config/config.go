package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvConfig holds process configuration resolved from the environment.
// Field names mirror the environment variable names.
type EnvConfig struct {
	APP_PORT      string
	LOG_FILE_PATH string

	JWT_SECRET    string
	JWT_TTL_HOURS int

	// Postgres (users)
	DB_HOST              string
	DB_PORT              string
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_MAX_OPEN_CONNS    int
	DB_MAX_IDLE_CONNS    int
	DB_CONN_MAX_LIFETIME time.Duration

	// Datastore (tasks)
	GCP_PROJECT_ID string

	// Optional collaborators. Empty means disabled.
	REDIS_ADDR      string
	REDIS_PASSWORD  string
	REDIS_STATS_TTL time.Duration

	KAFKA_BROKER string
	KAFKA_TOPIC  string

	ELASTIC_URL string

	EXPORT_LAYOUT_PATH string
}

var DefaultEnvConfig EnvConfig

// LoadEnvConfig reads .env when present and materializes DefaultEnvConfig.
// Missing optional values fall back to defaults; integrations stay off when
// their address is unset.
func LoadEnvConfig() error {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	DefaultEnvConfig = EnvConfig{
		APP_PORT:      getEnv("APP_PORT", "3001"),
		LOG_FILE_PATH: getEnv("LOG_FILE_PATH", ""),

		JWT_SECRET:    getEnv("JWT_SECRET", "your_jwt_secret_key"),
		JWT_TTL_HOURS: getEnvInt("JWT_TTL_HOURS", 24),

		DB_HOST:              getEnv("DB_HOST", "localhost"),
		DB_PORT:              getEnv("DB_PORT", "5432"),
		DB_USER:              getEnv("DB_USER", "postgres"),
		DB_PASSWORD:          getEnv("DB_PASSWORD", ""),
		DB_NAME:              getEnv("DB_NAME", "task_dashboard"),
		DB_SSL_MODE:          getEnv("DB_SSL_MODE", "disable"),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DB_CONN_MAX_LIFETIME: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,

		GCP_PROJECT_ID: getEnv("GCP_PROJECT_ID", "task-dashboard"),

		REDIS_ADDR:      getEnv("REDIS_ADDR", ""),
		REDIS_PASSWORD:  getEnv("REDIS_PASSWORD", ""),
		REDIS_STATS_TTL: time.Duration(getEnvInt("REDIS_STATS_TTL_SECONDS", 30)) * time.Second,

		KAFKA_BROKER: getEnv("KAFKA_BROKER", ""),
		KAFKA_TOPIC:  getEnv("KAFKA_TOPIC", "task-events"),

		ELASTIC_URL: getEnv("ELASTIC_URL", ""),

		EXPORT_LAYOUT_PATH: getEnv("EXPORT_LAYOUT_PATH", ""),
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
