package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/example/umass-dining-bot/pkg/logger"
)

// Config holds all configuration for the application
type Config struct {
	// Chat platform tokens
	DiscordToken  string
	TelegramToken string

	// Platform disable switches, useful for testing one platform in isolation
	DisableDiscord  bool
	DisableTelegram bool

	// Paths
	ListenersFile string
	RoomDataFile  string
	DataDir       string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Global.Debug("No .env file loaded: %v", err)
	}

	cfg := &Config{
		DisableDiscord:  os.Getenv("NO_DISCORD") != "",
		DisableTelegram: os.Getenv("NO_TELEGRAM") != "",
		ListenersFile:   getEnvWithDefault("LISTENERS_FILE", "listeners.txt"),
		RoomDataFile:    getEnvWithDefault("ROOM_DATA_FILE", "spire.json"),
		DataDir:         getEnvWithDefault("DATA_DIR", "data"),
	}

	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	if cfg.DiscordToken == "" && !cfg.DisableDiscord {
		return nil, fmt.Errorf("DISCORD_TOKEN environment variable is required")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" && !cfg.DisableTelegram {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	if cfg.DisableDiscord && cfg.DisableTelegram {
		return nil, fmt.Errorf("both platforms are disabled, nothing to run")
	}

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	if len(logCfg.DiscordToken) > 8 {
		logCfg.DiscordToken = logCfg.DiscordToken[:8] + "...REDACTED..."
	}
	if len(logCfg.TelegramToken) > 8 {
		logCfg.TelegramToken = logCfg.TelegramToken[:8] + "...REDACTED..."
	}
	logger.Global.Info("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
