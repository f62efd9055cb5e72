package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration for both the connector and the relay.
type Config struct {
	Env      string
	LogLevel string

	// Connector
	Port             string
	RelayAddr        string
	ReplyTimeout     time.Duration
	HandshakeTimeout time.Duration

	// Relay
	RelayListenAddr string

	// Conversational engine
	GeminiAPIKey    string
	GeminiModel     string
	EngineMaxTokens int

	// Session store
	RedisAddr         string
	RedisPassword     string
	SessionMaxSenders int
	SessionTTL        time.Duration

	// Dedup cache
	DedupCapacity int
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Port:             getEnv("PORT", "4000"),
		RelayAddr:        getEnv("RELAY_ADDR", "ws://localhost:8765"),
		ReplyTimeout:     getEnvAsDuration("CONNECTOR_REPLY_TIMEOUT", 30*time.Second),
		HandshakeTimeout: getEnvAsDuration("CONNECTOR_HANDSHAKE_TIMEOUT", 5*time.Second),

		RelayListenAddr: getEnv("RELAY_LISTEN_ADDR", ":8765"),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		EngineMaxTokens: getEnvAsInt("ENGINE_MAX_TOKENS", 1000),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		SessionMaxSenders: getEnvAsInt("SESSION_MAX_SENDERS", 1000),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		DedupCapacity: getEnvAsInt("DEDUP_CAPACITY", 100),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
