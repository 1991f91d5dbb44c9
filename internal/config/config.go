// Package config loads settings for the web server from the environment and
// for hbnbctl from a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dukerupert/hbnb/internal/backend"
)

// Config holds the web server settings.
type Config struct {
	Port          string
	APIBase       string
	APITimeout    time.Duration
	LogLevel      string
	LogFormat     string
	CookieSecret  string
	CookieSalt    string
	SecureCookies bool
	BehindProxy   bool
}

// writeTimeoutSlack is added on top of the API timeout so a page can still be
// rendered after a slow backend call.
const writeTimeoutSlack = 10 * time.Second

// WriteTimeout returns the http.Server write timeout. It is zero, meaning no
// timeout, when the API timeout is disabled.
func (c *Config) WriteTimeout() time.Duration {
	if c.APITimeout == 0 {
		return 0
	}
	return c.APITimeout + writeTimeoutSlack
}

// Load reads configuration from environment variables, after loading a .env
// file if one exists.
func Load() (*Config, error) {
	godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("HBNB_API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("HBNB_API_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("HBNB_API_TIMEOUT must not be negative")
	}

	secure, err := strconv.ParseBool(getEnv("HBNB_SECURE_COOKIES", "false"))
	if err != nil {
		return nil, fmt.Errorf("HBNB_SECURE_COOKIES: %w", err)
	}

	proxy, err := strconv.ParseBool(getEnv("HBNB_BEHIND_PROXY", "false"))
	if err != nil {
		return nil, fmt.Errorf("HBNB_BEHIND_PROXY: %w", err)
	}

	return &Config{
		Port:          getEnv("HBNB_PORT", "8080"),
		APIBase:       getEnv("HBNB_API_BASE", backend.DefaultBaseURL),
		APITimeout:    timeout,
		LogLevel:      getEnv("HBNB_LOG_LEVEL", "info"),
		LogFormat:     getEnv("HBNB_LOG_FORMAT", "text"),
		CookieSecret:  os.Getenv("HBNB_COOKIE_SECRET"),
		CookieSalt:    os.Getenv("HBNB_COOKIE_SALT"),
		SecureCookies: secure,
		BehindProxy:   proxy,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
