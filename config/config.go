package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "sjsage522/dirscraper/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Directory configuration
	DirectoryURL     string
	DirectoryProfile string
	ProfilesFile     string
	SkipInvalid      bool

	// HTTP configuration
	HTTPTimeout time.Duration
	UserAgent   string

	// Output configuration
	OutputPath string

	// Photo configuration
	PhotoDir         string
	PhotoConcurrency int
	PhotoErrorLog    string
	PhotoLedgerTTL   time.Duration

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "1000"))
	httpTimeout, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "10"))
	photoConcurrency, _ := strconv.Atoi(getEnv("PHOTO_CONCURRENCY", "5"))
	ledgerTTL, _ := strconv.Atoi(getEnv("PHOTO_LEDGER_TTL_HOURS", "24"))
	skipInvalid, _ := strconv.ParseBool(getEnv("SKIP_INVALID", "false"))

	return &Config{
		DirectoryURL:         getEnv("DIRECTORY_URL", ""),
		DirectoryProfile:     getEnv("DIRECTORY_PROFILE", "religion"),
		ProfilesFile:         getEnv("PROFILES_FILE", ""),
		SkipInvalid:          skipInvalid,
		HTTPTimeout:          time.Duration(httpTimeout) * time.Second,
		UserAgent:            getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		OutputPath:           getEnv("OUTPUT_PATH", "employees.csv"),
		PhotoDir:             getEnv("PHOTO_DIR", "photos"),
		PhotoConcurrency:     photoConcurrency,
		PhotoErrorLog:        getEnv("PHOTO_ERROR_LOG", "photo_errors.log"),
		PhotoLedgerTTL:       time.Duration(ledgerTTL) * time.Hour,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "employees"),
		RedisStreamMaxLength: redisStreamMaxLength,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		Environment:          getEnv("DIRSCRAPER_ENVIRONMENT", "development"),
	}
}

// Validate checks values that would otherwise fail deep inside a command
func (c *Config) Validate() error {
	if c.DirectoryProfile == "" {
		return apperrors.NewConfiguration("DIRECTORY_PROFILE must not be empty", nil)
	}
	if c.HTTPTimeout <= 0 {
		return apperrors.NewConfiguration("HTTP_TIMEOUT_SECONDS must be > 0", nil)
	}
	if c.PhotoConcurrency <= 0 {
		return apperrors.NewConfiguration(fmt.Sprintf("PHOTO_CONCURRENCY must be > 0, got %d", c.PhotoConcurrency), nil)
	}
	if c.OutputPath == "" {
		return apperrors.NewConfiguration("OUTPUT_PATH must not be empty", nil)
	}
	if c.RedisAddr != "" && c.RedisStream == "" {
		return apperrors.NewConfiguration("REDIS_STREAM is required when REDIS_ADDR is set", nil)
	}
	if c.RedisStreamMaxLength < 0 {
		return apperrors.NewConfiguration("REDIS_STREAM_MAX_LENGTH must be >= 0", nil)
	}
	if c.DirectoryURL != "" && !strings.HasPrefix(c.DirectoryURL, "http://") && !strings.HasPrefix(c.DirectoryURL, "https://") {
		return apperrors.NewConfiguration("DIRECTORY_URL must be an http(s) URL", nil)
	}
	return nil
}

// PublishEnabled reports whether scraped records go to Redis
func (c *Config) PublishEnabled() bool {
	return c.RedisAddr != ""
}

// LedgerEnabled reports whether the memcached photo ledger is configured
func (c *Config) LedgerEnabled() bool {
	return c.MemcacheAddr != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
