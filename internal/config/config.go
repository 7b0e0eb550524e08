package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
// Following 12-factor app principles, all config is loaded from environment variables.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Payment  PaymentConfig
	GenAI    GenAIConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for authentication
}

// RedisConfig configures the live-viewers counter backend.
// An empty Addr disables the counters entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MongoConfig configures the user-profile document store.
// An empty URI disables profile persistence.
type MongoConfig struct {
	URI      string
	Database string
}

// PaymentConfig configures the external payment gateway.
// An empty Endpoint means the gateway is unavailable and checkout
// submission is blocked.
type PaymentConfig struct {
	Endpoint  string
	KeyID     string
	KeySecret string
	Currency  string
	TimeoutMs int
}

// GenAIConfig configures the generative text collaborator used for
// product recommendations. Best-effort: empty values disable it.
type GenAIConfig struct {
	Endpoint string
	APIKey   string
	Model    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"apitest"}),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "storefront"),
		},
		Payment: PaymentConfig{
			Endpoint:  getEnv("PAYMENT_ENDPOINT", ""),
			KeyID:     getEnv("PAYMENT_KEY_ID", ""),
			KeySecret: getEnv("PAYMENT_KEY_SECRET", ""),
			Currency:  getEnv("PAYMENT_CURRENCY", "USD"),
			TimeoutMs: getEnvAsInt("PAYMENT_TIMEOUT_MS", 15000),
		},
		GenAI: GenAIConfig{
			Endpoint: getEnv("GENAI_ENDPOINT", ""),
			APIKey:   getEnv("GENAI_API_KEY", ""),
			Model:    getEnv("GENAI_MODEL", "gemini-1.5-flash"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	if c.Payment.Endpoint != "" && c.Payment.KeyID == "" {
		return fmt.Errorf("PAYMENT_KEY_ID is required when PAYMENT_ENDPOINT is set")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

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

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
