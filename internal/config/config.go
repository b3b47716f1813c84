// Package config loads runtime settings from the environment (and an optional .env file).
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"status_board/internal/model"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned by Load when JWT_SECRET_KEY is empty
var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY not set in environment")

// Config holds application level configuration
type Config struct {
	ServerPort         string
	JWTSecret          string
	JWTExpirationHours int64
	StatusOptions      model.StatusOptions
	LogLevel           string
	LogFormat          string
	GinMode            string
	CORSAllowedOrigin  string
}

// LoadEnvFile loads .env if present. It reports whether a file was loaded.
func LoadEnvFile(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Load builds Config from environment with defaults
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "5000"),
		JWTSecret:          os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: getEnvInt64("JWT_EXPIRATION_HOURS", 1),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		GinMode:            os.Getenv("GIN_MODE"),
		CORSAllowedOrigin:  getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}
	cfg.StatusOptions, _ = LoadStatusOptions()
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

// LoadStatusOptions parses STATUS_OPTIONS. fromEnv is false when the variable
// held nothing usable and the defaults were returned.
func LoadStatusOptions() (opts model.StatusOptions, fromEnv bool) {
	values := parseList(os.Getenv("STATUS_OPTIONS"), nil)
	if len(values) == 0 {
		return model.NewStatusOptions(model.DefaultStatusOptions), false
	}
	return model.NewStatusOptions(values), true
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

// parseList splits a comma separated value, falling back to def when nothing usable is set
func parseList(raw string, def []string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
