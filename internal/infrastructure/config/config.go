// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Airline
	CarrierCode string

	// Data sources
	CddDSN     string
	AirportDSN string

	// Status provider
	StatusAPIBaseURL string
	StatusAPIKey     string
	StatusAPITimeout time.Duration

	// Messaging provider
	WhatsappBaseURL   string
	WhatsappToken     string
	WhatsappChannelID string
	// Template used by the unified single-variable send path. The path is
	// rejected as unconfigured when this is empty.
	UnifiedTemplate         string
	UnifiedTemplateLanguage string

	// Check-in reminder relay
	CheckinRelayBaseURL string
	CheckinRelayTimeout time.Duration
	ReminderWorkers     int
	ReminderQueueSize   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		CarrierCode: getEnv("CARRIER_CODE", "GF"),

		CddDSN:     getEnv("CDD_DSN", ""),
		AirportDSN: getEnv("AIRPORT_DSN", ""),

		StatusAPIBaseURL: getEnv("STATUS_API_BASE_URL", "https://api.oag.com"),
		StatusAPIKey:     getEnv("STATUS_API_KEY", ""),
		StatusAPITimeout: time.Duration(getEnvAsInt("STATUS_API_TIMEOUT", 30)) * time.Second,

		WhatsappBaseURL:         getEnv("WHATSAPP_BASE_URL", ""),
		WhatsappToken:           getEnv("WHATSAPP_TOKEN", ""),
		WhatsappChannelID:       getEnv("WHATSAPP_CHANNEL_ID", ""),
		UnifiedTemplate:         getEnv("UNIFIED_TEMPLATE", ""),
		UnifiedTemplateLanguage: getEnv("UNIFIED_TEMPLATE_LANGUAGE", "en"),

		CheckinRelayBaseURL: getEnv("CHECKIN_RELAY_BASE_URL", ""),
		CheckinRelayTimeout: time.Duration(getEnvAsInt("CHECKIN_RELAY_TIMEOUT", 300)) * time.Second,
		ReminderWorkers:     getEnvAsInt("REMINDER_WORKERS", 2),
		ReminderQueueSize:   getEnvAsInt("REMINDER_QUEUE_SIZE", 64),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
