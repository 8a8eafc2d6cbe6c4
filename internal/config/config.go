package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port              int
	NatsURL           string
	NatsToken         string
	DatabaseURL       string
	LogLevel          string
	AnthropicAPIKey   string
	AnthropicModel    string
	APIToken          string
	MaxBodyBytes      int64
	RateWindowSeconds int
	RateMaxRequests   int
}

func Load() Config {
	return Config{
		Port:              envInt("QUILL_PORT", 8760),
		NatsURL:           envStr("NATS_URL", ""),
		NatsToken:         envStr("NATS_TOKEN", ""),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey:   envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    envStr("QUILL_MODEL", "claude-sonnet-4-20250514"),
		APIToken:          envStr("QUILL_API_TOKEN", ""),
		MaxBodyBytes:      int64(envInt("QUILL_MAX_BODY_BYTES", 10<<20)),
		RateWindowSeconds: envInt("QUILL_RATE_WINDOW_SECONDS", 60),
		RateMaxRequests:   envInt("QUILL_RATE_MAX_REQUESTS", 0),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
