package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the dashboard reads from the environment.
// The REST backend and the asset CDN are external collaborators; we
// only carry their base URLs.
type Config struct {
	APIBaseURL     string
	AssetBaseURL   string
	HTTPAddr       string
	SessionSecret  string
	Env            string // dev|prod
	LogLevel       string
	SentryDSN      string
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		AssetBaseURL:   getenv("ASSET_BASE_URL", ""),
		HTTPAddr:       getenv("HTTP_ADDR", ":8090"),
		SessionSecret:  getenv("SESSION_SECRET", "dev-only-session-secret"),
		Env:            getenv("ENV", "dev"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		RequestTimeout: getduration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is empty")
	}
	if cfg.AssetBaseURL == "" {
		cfg.AssetBaseURL = cfg.APIBaseURL
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
