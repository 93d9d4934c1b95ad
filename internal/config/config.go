package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Queue    QueueConfig
	Campaign CampaignConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Host string
	Port string
}

// StorageConfig locates the JSON documents on disk.
type StorageConfig struct {
	DataDir string
}

// DatabaseConfig is optional; when URL is empty the file store is used.
type DatabaseConfig struct {
	URL string
}

// QueueConfig is optional; when URL is empty no events are published.
type QueueConfig struct {
	URL string
}

// CampaignConfig bounds the campaign send fan-out.
type CampaignConfig struct {
	Workers int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Host: getEnv("APP_HOST", "0.0.0.0"),
			Port: getEnv("PORT", "3001"),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Queue: QueueConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},
		Campaign: CampaignConfig{
			Workers: getEnvAsInt("CAMPAIGN_WORKERS", 5),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
