package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token store backends
const (
	TokenStoreKeyring = "keyring"
	TokenStoreMemory  = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Client Configuration
	Client ClientConfig

	// Stub server Configuration
	StubServer StubServerConfig

	// Logging Configuration
	Logging LoggingConfig
}

// ClientConfig holds settings for the API client
type ClientConfig struct {
	TokenStore  string        // keyring, memory
	HTTPTimeout time.Duration // zero means no timeout
}

// StubServerConfig holds settings for the local stub server
type StubServerConfig struct {
	Address     string
	AllowOrigin string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	tokenStore := strings.ToLower(getEnv("CHESSCTL_TOKEN_STORE", TokenStoreKeyring))
	if tokenStore != TokenStoreKeyring && tokenStore != TokenStoreMemory {
		return nil, fmt.Errorf("invalid CHESSCTL_TOKEN_STORE '%s', must be one of: keyring, memory", tokenStore)
	}

	var timeout time.Duration
	if raw := os.Getenv("CHESSCTL_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CHESSCTL_HTTP_TIMEOUT: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid CHESSCTL_HTTP_TIMEOUT: must not be negative")
		}
		timeout = d
	}

	return &Config{
		Client: ClientConfig{
			TokenStore:  tokenStore,
			HTTPTimeout: timeout,
		},
		StubServer: StubServerConfig{
			Address:     getEnv("STUBSERVER_ADDR", ":8080"),
			AllowOrigin: getEnv("STUBSERVER_ALLOW_ORIGIN", "*"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
