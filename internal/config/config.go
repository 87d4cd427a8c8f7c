// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort         = "8080"
	defaultCacheTTL     = time.Hour
	defaultProvinceCode = "31" // DKI Jakarta
)

// Config holds all runtime configuration for the radar server.
type Config struct {
	Port         string
	GeminiAPIKey string // empty disables all AI-backed behavior
	GeminiModel  string
	MaxPages     int           // listing page ceiling; 0 means no ceiling
	CacheTTL     time.Duration // vacancy cache freshness window
	ProvinceCode string        // region filter passed to the listings API
	Debug        bool
}

// Load reads environment variables and returns a validated Config. The AI
// key is optional; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         envOr("PORT", defaultPort),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		MaxPages:     0,
		CacheTTL:     defaultCacheTTL,
		ProvinceCode: envOr("KODE_PROVINSI", defaultProvinceCode),
		Debug:        os.Getenv("DEBUG") != "",
	}

	if s := os.Getenv("MAX_PAGES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("MAX_PAGES must be a non-negative integer, got %q", s)
		}
		cfg.MaxPages = v
	}

	if s := os.Getenv("CACHE_TTL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("CACHE_TTL must be a positive duration, got %q", s)
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
