package app

import (
	"os"
	"strconv"
	"time"

	"github.com/lotworks/opls/internal/service"
)

type Config struct {
	Issuer string // Issuer claim for access tokens

	DatabaseFile         string        // Path to SQLite database file (default: ./opls.db)
	PepperFile           string        // Path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-session sweep interval (default: 1h)

	AccessTTL  time.Duration // Access token lifetime (default: 60m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 24h)

	Bootstrap service.BootstrapConfig // First-run seed client and admin account
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               getEnvOrDefault("OPLS_ISSUER", "opls-auth"),
		DatabaseFile:         getEnvOrDefault("OPLS_DATABASE_FILE", "opls.db"),
		PepperFile:           getEnvOrDefault("OPLS_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		AccessTTL:            getEnvDurationOrDefault("OPLS_ACCESS_TTL", time.Hour),
		RefreshTTL:           getEnvDurationOrDefault("OPLS_REFRESH_TTL", 24*time.Hour),
		Bootstrap: service.BootstrapConfig{
			ClientID:              getEnvOrDefault("OPLS_BOOTSTRAP_CLIENT_ID", ""),
			ClientSecret:          getEnvOrDefault("OPLS_BOOTSTRAP_CLIENT_SECRET", ""),
			ClientName:            getEnvOrDefault("OPLS_BOOTSTRAP_CLIENT_NAME", "Website"),
			AdminUsername:         getEnvOrDefault("OPLS_BOOTSTRAP_ADMIN_USERNAME", "admin"),
			AdminPassword:         getEnvOrDefault("OPLS_BOOTSTRAP_ADMIN_PASSWORD", "pw123"),
			AdminSecurityQuestion: getEnvOrDefault("OPLS_BOOTSTRAP_ADMIN_QUESTION", "What is your favourite colour?"),
			AdminSecurityAnswer:   getEnvOrDefault("OPLS_BOOTSTRAP_ADMIN_ANSWER", "blue"),
		},
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Duration syntax first (e.g. "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
