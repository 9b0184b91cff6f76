package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// APIConfig holds settings for the HTTP API server.
type APIConfig struct {
	ServerPort   string
	DatabaseURL  string
	AuthUser     string
	AuthPass     string
	AuthPassHash string
}

// BotConfig holds settings for the Telegram bot and the daily notifier.
type BotConfig struct {
	TelegramToken string
	RedisURL      string
	APIURL        string
	APIUser       string
	APIPass       string
	NotifyHour    int
	WindowDays    int
	DraftTTL      time.Duration
}

func LoadAPIConfig() (*APIConfig, error) {
	cfg := &APIConfig{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		AuthUser:     os.Getenv("AUTH_USER"),
		AuthPass:     os.Getenv("AUTH_PASS"),
		AuthPassHash: os.Getenv("AUTH_PASS_HASH"),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.AuthUser == "" {
		return nil, errors.New("AUTH_USER is required")
	}
	if cfg.AuthPass == "" && cfg.AuthPassHash == "" {
		return nil, errors.New("AUTH_PASS or AUTH_PASS_HASH is required")
	}

	return cfg, nil
}

func LoadBotConfig() (*BotConfig, error) {
	notifyHour, err := strconv.Atoi(getEnv("NOTIFY_HOUR", "6"))
	if err != nil || notifyHour < 0 || notifyHour > 23 {
		return nil, errors.New("NOTIFY_HOUR must be an hour between 0 and 23")
	}

	windowDays, err := strconv.Atoi(getEnv("WINDOW_DAYS", "7"))
	if err != nil || windowDays < 1 {
		return nil, errors.New("WINDOW_DAYS must be a positive integer")
	}

	draftTTL, err := time.ParseDuration(getEnv("DRAFT_TTL", "1h"))
	if err != nil {
		return nil, errors.New("invalid DRAFT_TTL format")
	}

	cfg := &BotConfig{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		RedisURL:      os.Getenv("REDIS_URL"),
		APIURL:        os.Getenv("API_URL"),
		APIUser:       os.Getenv("API_USER"),
		APIPass:       os.Getenv("API_PASS"),
		NotifyHour:    notifyHour,
		WindowDays:    windowDays,
		DraftTTL:      draftTTL,
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.APIURL == "" {
		return nil, errors.New("API_URL is required")
	}
	if cfg.APIUser == "" || cfg.APIPass == "" {
		return nil, errors.New("API_USER and API_PASS are required")
	}

	return cfg, nil
}

// Helper: get env with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
