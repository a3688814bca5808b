package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config carries the few runtime settings. Every field has a default;
// nothing is required.
type Config struct {
	DBPath         string
	LookupBaseURL  string
	HTTPTimeout    time.Duration
	ScanInterval   time.Duration
	SearchPageSize int
}

// Load reads settings from the environment, honoring a local .env file
// when present.
func Load(log *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using system env")
	}

	return &Config{
		DBPath:         getEnv("CALORIESCAN_DB", ""),
		LookupBaseURL:  getEnv("CALORIESCAN_LOOKUP_BASE_URL", ""),
		HTTPTimeout:    getDuration("CALORIESCAN_HTTP_TIMEOUT", 10*time.Second, log),
		ScanInterval:   getDuration("CALORIESCAN_SCAN_INTERVAL", time.Second, log),
		SearchPageSize: getInt("CALORIESCAN_SEARCH_PAGE_SIZE", 10, log),
	}
}

func getEnv(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration, log *zap.Logger) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn("invalid duration, using default", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return d
}

func getInt(key string, fallback int, log *zap.Logger) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Warn("invalid integer, using default", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return v
}
