package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds process-level settings for the s3_uploader binary
type AppConfig struct {
	SettingsFile         string // host settings file (JSON)
	ListenAddr           string // hook server address
	MaxConcurrentUploads int    // default: 1
	LogLevel             string // debug, info, warn, error (default: info)
	LogFormat            string // json, console (default: json)
}

// LoadApp reads process settings from a .env file (if present) and the environment.
// Variables already present in the environment are not overridden by .env.
func LoadApp() *AppConfig {
	// A missing .env is the normal case
	_ = godotenv.Load()

	return &AppConfig{
		SettingsFile:         os.Getenv("S3_UPLOADER_SETTINGS_FILE"),
		ListenAddr:           os.Getenv("S3_UPLOADER_LISTEN_ADDR"),
		MaxConcurrentUploads: atoi(os.Getenv("S3_UPLOADER_MAX_CONCURRENT_UPLOADS")),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		LogFormat:            os.Getenv("LOG_FORMAT"),
	}
}

// GetSettingsFile returns the settings file path (defaults to config.json)
func (c *AppConfig) GetSettingsFile() string {
	if c.SettingsFile != "" {
		return c.SettingsFile
	}
	return "config.json"
}

// GetListenAddr returns the hook server address (defaults to 127.0.0.1:7861)
func (c *AppConfig) GetListenAddr() string {
	if c.ListenAddr != "" {
		return c.ListenAddr
	}
	return "127.0.0.1:7861"
}

// GetMaxConcurrentUploads returns the dispatch concurrency (defaults to 1)
func (c *AppConfig) GetMaxConcurrentUploads() int {
	if c.MaxConcurrentUploads > 0 {
		return c.MaxConcurrentUploads
	}
	return 1
}

// GetLogLevel returns the log level (defaults to info)
func (c *AppConfig) GetLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "info"
}

// GetLogFormat returns the log format (defaults to json)
func (c *AppConfig) GetLogFormat() string {
	if c.LogFormat != "" {
		return c.LogFormat
	}
	return "json"
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
