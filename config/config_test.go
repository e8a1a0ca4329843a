package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "sjsage522/dirscraper/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "religion", config.DirectoryProfile)
	assert.Equal(t, "employees.csv", config.OutputPath)
	assert.Equal(t, 5, config.PhotoConcurrency)
	assert.Equal(t, 10*time.Second, config.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, config.PhotoLedgerTTL)
	assert.False(t, config.PublishEnabled())
	assert.False(t, config.LedgerEnabled())
	assert.NoError(t, config.Validate())

	// Test with environment variables
	t.Setenv("DIRECTORY_URL", "https://history.example.edu/directories")
	t.Setenv("DIRECTORY_PROFILE", "history")
	t.Setenv("PHOTO_CONCURRENCY", "3")
	t.Setenv("REDIS_ADDR", "redis.example.com:6379")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")
	t.Setenv("SKIP_INVALID", "true")

	config = LoadConfig()
	assert.Equal(t, "https://history.example.edu/directories", config.DirectoryURL)
	assert.Equal(t, "history", config.DirectoryProfile)
	assert.Equal(t, 3, config.PhotoConcurrency)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.True(t, config.SkipInvalid)
	assert.True(t, config.PublishEnabled())
	assert.True(t, config.LedgerEnabled())
	assert.NoError(t, config.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero concurrency", func(c *Config) { c.PhotoConcurrency = 0 }},
		{"empty profile", func(c *Config) { c.DirectoryProfile = "" }},
		{"non http url", func(c *Config) { c.DirectoryURL = "ftp://example.com" }},
		{"redis without stream", func(c *Config) { c.RedisAddr = "localhost:6379"; c.RedisStream = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConfiguration))
		})
	}
}
