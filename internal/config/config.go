// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Config holds all application configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int
	// DBPath is the sqlite history database path.
	DBPath string
	// CacheMaxEntries bounds the number of cached scan roots.
	CacheMaxEntries int
	// CacheMaxBytes is the approximate memory budget of the result cache.
	CacheMaxBytes int64
	// HistoryLimit is the number of history records retained.
	HistoryLimit int
	// ScanPaths are roots rescanned on the schedule.
	ScanPaths []string
	// ScanSchedule is a cron expression; empty disables scheduled rescans.
	ScanSchedule string
	// ScanRateLimit is the sustained scan-request rate allowed per second.
	ScanRateLimit float64
	// ScanRateBurst is the rate limiter's burst allowance.
	ScanRateBurst int
}

// Load reads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		Port:            getEnvInt("DIRSCOPE_PORT", 8080),
		DBPath:          getEnv("DIRSCOPE_DB_PATH", "./data/dirscope.db"),
		CacheMaxEntries: getEnvInt("DIRSCOPE_CACHE_MAX_ENTRIES", 50),
		CacheMaxBytes:   getEnvSize("DIRSCOPE_CACHE_MAX_SIZE", 100*1024*1024),
		HistoryLimit:    getEnvInt("DIRSCOPE_HISTORY_LIMIT", 50),
		ScanSchedule:    getEnv("DIRSCOPE_SCAN_SCHEDULE", ""),
		ScanRateLimit:   getEnvFloat("DIRSCOPE_RATE_LIMIT", 5),
		ScanRateBurst:   getEnvInt("DIRSCOPE_RATE_BURST", 10),
	}

	// Parse comma-separated scan paths
	if paths := getEnv("DIRSCOPE_SCAN_PATHS", ""); paths != "" {
		for _, p := range strings.Split(paths, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.ScanPaths = append(cfg.ScanPaths, p)
			}
		}
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// getEnvSize parses human-readable sizes like "100MB" or "1GiB".
func getEnvSize(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := humanize.ParseBytes(val); err == nil {
			return int64(n)
		}
	}
	return defaultVal
}
