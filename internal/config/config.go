package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config aggregates every environment-sourced setting the proxy needs.
type Config struct {
	App      *AppConfig
	Redis    *RedisConfig
	Upstream *UpstreamConfig
	Security *SecurityConfig
}

type AppConfig struct {
	Port string
}

type UpstreamConfig struct {
	APIKey  string
	BaseURL string
	TTLSec  int
}

type SecurityConfig struct {
	ProxyToken string
}

// Load builds a Config from the process environment and fails fast if any
// required variable is missing, mirroring the RuntimeError guards the
// original implementation raised at import time.
func Load() (*Config, error) {
	apiKey := os.Getenv("ORS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ORS_API_KEY is required")
	}

	redisURL := getEnv("REDIS_URL", "")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	proxyToken := os.Getenv("PROXY_TOKEN")
	if proxyToken == "" {
		return nil, fmt.Errorf("PROXY_TOKEN is required")
	}

	cfg := &Config{
		App: &AppConfig{
			Port: getEnv("PORT", "5000"),
		},
		Redis: &RedisConfig{
			URL: redisURL,
		},
		Upstream: &UpstreamConfig{
			APIKey:  apiKey,
			BaseURL: getEnv("ORS_BASE_URL", "https://api.openrouteservice.org"),
			TTLSec:  getEnvAsInt("CACHE_TTL_SEC", 86400),
		},
		Security: &SecurityConfig{
			ProxyToken: proxyToken,
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
