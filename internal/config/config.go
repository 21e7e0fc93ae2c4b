// Package config centralises configuration parsing for the hydration service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hydration/internal/domain"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config captures runtime configuration values for the hydration service.
type Config struct {
	Addr            string
	WebDir          string
	Store           string
	DatabaseURL     string
	DefaultTimezone string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	WeatherTimeout     time.Duration

	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	SessionTTL  time.Duration
	ForwardAuth bool
}

// Load reads environment variables into Config, applying defaults for local dev.
func Load() Config {
	return Config{
		Addr:               getEnv("ADDR", ":8080"),
		WebDir:             getEnv("WEB_DIR", "web"),
		Store:              strings.ToLower(getEnv("STORE", StorePostgres)),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DefaultTimezone:    getEnv("DEFAULT_TIMEZONE", domain.DefaultTimezone),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		ShutdownTimeout:    getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherTimeout:     getDurationEnv("WEATHER_TIMEOUT", 5*time.Second),
		OIDCIssuer:         getEnv("OIDC_ISSUER", ""),
		OIDCClientID:       getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret:   getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:    getEnv("OIDC_REDIRECT_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", "hydration"),
		JWTTTL:             getDurationEnv("JWT_TTL", 720*time.Hour),
		SessionTTL:         getDurationEnv("SESSION_TTL", 24*time.Hour),
		ForwardAuth:        getBoolEnv("FORWARD_AUTH", false),
	}
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE=postgres"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE %q", c.Store))
	}
	if !domain.ValidTimezone(c.DefaultTimezone) {
		errs = append(errs, fmt.Errorf("unknown DEFAULT_TIMEZONE %q", c.DefaultTimezone))
	}
	if c.SSOEnabled() && c.OIDCRedirectURL == "" {
		errs = append(errs, errors.New("OIDC_REDIRECT_URL is required when SSO is enabled"))
	}
	return errors.Join(errs...)
}

// SSOEnabled reports whether OIDC login is configured.
func (c Config) SSOEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// WeatherEnabled reports whether a weather API key is configured.
func (c Config) WeatherEnabled() bool {
	return c.OpenWeatherAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
