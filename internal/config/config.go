package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	HTTPAddr       string
	AllowedOrigins string

	RedisURL    string
	DatabaseURL string

	HistoryLimit      int
	HistoryTTLSeconds int

	MessagesLang string
	MessagesDir  string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:          ":3000",
		AllowedOrigins:    "http://localhost:5173",
		HistoryLimit:      200,
		HistoryTTLSeconds: 86400,
		MessagesLang:      "en",
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		cfg.AllowedOrigins = v
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("HISTORY_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("HISTORY_LIMIT must be a non-negative integer, got %q", v)
		}
		cfg.HistoryLimit = n
	}
	if v := strings.TrimSpace(os.Getenv("HISTORY_TTL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryTTLSeconds = n
		}
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("MESSAGES_LANG"))); v != "" {
		cfg.MessagesLang = v
	}
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	switch cfg.MessagesLang {
	case "en", "uz":
	default:
		return nil, fmt.Errorf("MESSAGES_LANG must be en or uz, got %q", cfg.MessagesLang)
	}
	return cfg, nil
}
