// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret signs and verifies bearer tokens. Required.
	JWTSecret string

	// OpenAIAPIKey authenticates requests to the completion API. Required.
	OpenAIAPIKey string

	// OpenAIEndpoint is the chat-completions URL.
	// Defaults to the public OpenAI endpoint.
	OpenAIEndpoint string

	// OpenAIModel is the model name sent with each completion request.
	// Defaults to "gpt-4o-mini".
	OpenAIModel string

	// GenerationTimeout bounds a single itinerary generation call.
	// Itineraries for long trips take minutes, so the default is generous.
	// Set GENERATION_TIMEOUT to a Go duration string to override. Defaults to 3m.
	GenerationTimeout time.Duration

	// MaxBodyBytes limits incoming request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		OpenAIEndpoint: getEnv("OPENAI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	var missing []string
	for _, v := range []struct {
		name string
		dst  *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"JWT_SECRET", &cfg.JWTSecret},
		{"OPENAI_API_KEY", &cfg.OpenAIAPIKey},
	} {
		*v.dst = os.Getenv(v.name)
		if *v.dst == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	cfg.GenerationTimeout, err = getDuration("GENERATION_TIMEOUT", 3*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(part string, _ int) (string, bool) {
		t := strings.TrimSpace(part)
		return t, t != ""
	})
}
