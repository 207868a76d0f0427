package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv            string
	Port              string
	SSESecret         string
	AllowedOrigin     string
	LogLevel          string
	LogFormat         string
	KeepAliveInterval time.Duration
	SubscriberBuffer  int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8000"),
		SSESecret:     getEnv("SSE_SECRET", ""),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	if cfg.SSESecret == "" {
		return nil, fmt.Errorf("SSE_SECRET is required")
	}

	keepAlive, err := getEnvInt("KEEPALIVE_INTERVAL", 25)
	if err != nil {
		return nil, err
	}
	if keepAlive <= 0 {
		return nil, fmt.Errorf("KEEPALIVE_INTERVAL must be positive, got %d", keepAlive)
	}
	cfg.KeepAliveInterval = time.Duration(keepAlive) * time.Second

	buffer, err := getEnvInt("SUBSCRIBER_BUFFER", 16)
	if err != nil {
		return nil, err
	}
	if buffer <= 0 {
		return nil, fmt.Errorf("SUBSCRIBER_BUFFER must be positive, got %d", buffer)
	}
	cfg.SubscriberBuffer = buffer

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
