package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultBackendBaseURL is the REST service the client was built against.
const DefaultBackendBaseURL = "https://customer-rest-service-frontend-personaltrainer.2.rahtiapp.fi/api"

// BackendConfig holds settings for the remote customer/training REST service.
type BackendConfig struct {
	BaseURL          string
	TimeoutSec       int
	HealthTimeoutSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string

	// SessionIdleMin is how long an untouched browser session keeps its
	// page state.
	SessionIdleMin int
	Backend        BackendConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		Timezone:       getEnv("APP_TIMEZONE", "Local"),
		SessionIdleMin: getEnvInt("SESSION_IDLE_MIN", 30),
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", DefaultBackendBaseURL),
			// 0 keeps backend calls unbounded; the request context still applies.
			TimeoutSec:       getEnvInt("BACKEND_TIMEOUT_SEC", 0),
			HealthTimeoutSec: getEnvInt("BACKEND_HEALTH_TIMEOUT_SEC", 2),
		},
	}
}

// Location resolves Timezone, falling back to time.Local for unknown names.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SessionIdle returns SessionIdleMin as a duration; non-positive means 30m.
func (c *AppConfig) SessionIdle() time.Duration {
	if c.SessionIdleMin <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.SessionIdleMin) * time.Minute
}

// Timeout returns the backend request timeout; zero means none.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(b.TimeoutSec) * time.Second
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
