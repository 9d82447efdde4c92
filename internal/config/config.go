// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr    string
	DBPath        string
	SiteFile      string
	Watch         bool
	WatchDebounce time.Duration
	LogLevel      slog.Level
	WriteRate     float64
	WriteBurst    int
}

// HasSiteFile reports whether a YAML site file was configured.
func (c *Config) HasSiteFile() bool {
	return c.SiteFile != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional: SITESETTINGS_LISTEN_ADDR (127.0.0.1:8080),
// SITESETTINGS_DB_PATH (sitesettings.db), SITESETTINGS_SITE_FILE (none),
// SITESETTINGS_WATCH (false), SITESETTINGS_WATCH_DEBOUNCE (500ms),
// SITESETTINGS_LOG_LEVEL (info), SITESETTINGS_WRITE_RATE (1 per second),
// SITESETTINGS_WRITE_BURST (5). Watching requires a site file.
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("SITESETTINGS_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	dbPath := "sitesettings.db"
	if v, ok := os.LookupEnv("SITESETTINGS_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	siteFile := strings.TrimSpace(os.Getenv("SITESETTINGS_SITE_FILE"))

	watch := false
	if v, ok := os.LookupEnv("SITESETTINGS_WATCH"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SITESETTINGS_WATCH has invalid boolean %q: %w", v, err)
		}
		watch = parsed
	}
	if watch && siteFile == "" {
		return nil, fmt.Errorf("SITESETTINGS_WATCH requires SITESETTINGS_SITE_FILE to be set")
	}

	debounce := 500 * time.Millisecond
	if v, ok := os.LookupEnv("SITESETTINGS_WATCH_DEBOUNCE"); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SITESETTINGS_WATCH_DEBOUNCE has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("SITESETTINGS_WATCH_DEBOUNCE must be positive, got %s", parsed)
		}
		debounce = parsed
	}

	level := slog.LevelInfo
	if v, ok := os.LookupEnv("SITESETTINGS_LOG_LEVEL"); ok && v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("SITESETTINGS_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	writeRate := 1.0
	if v, ok := os.LookupEnv("SITESETTINGS_WRITE_RATE"); ok && v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("SITESETTINGS_WRITE_RATE has invalid number %q: %w", v, err)
		}
		if parsed <= 0 || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
			return nil, fmt.Errorf("SITESETTINGS_WRITE_RATE must be a positive number, got %q", v)
		}
		writeRate = parsed
	}

	writeBurst := 5
	if v, ok := os.LookupEnv("SITESETTINGS_WRITE_BURST"); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SITESETTINGS_WRITE_BURST has invalid integer %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("SITESETTINGS_WRITE_BURST must be positive, got %d", parsed)
		}
		writeBurst = parsed
	}

	return &Config{
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
		SiteFile:      siteFile,
		Watch:         watch,
		WatchDebounce: debounce,
		LogLevel:      level,
		WriteRate:     writeRate,
		WriteBurst:    writeBurst,
	}, nil
}
