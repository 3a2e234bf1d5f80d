package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAllowedOrigins covers the desktop shell and its dev server.
const DefaultAllowedOrigins = "http://localhost:1420,http://127.0.0.1:1420,tauri://localhost,http://tauri.localhost"

// Config holds all configuration for the application.
type Config struct {
	DBPath         string
	DBCacheSizeKB  int
	APIHost        string
	APIPort        int
	APIPortMax     int
	LogLevel       slog.Level
	LogFormat      string
	LogFile        string
	AllowedOrigins []string
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:    getEnv("DB_PATH", "./data/notes.db"),
		APIHost:   getEnv("API_HOST", "127.0.0.1"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogFile:   getEnv("LOG_FILE", ""),
	}

	if cfg.APIPort, err = getEnvInt("API_PORT", 3001); err != nil {
		return nil, err
	}
	if cfg.APIPortMax, err = getEnvInt("API_PORT_MAX", 3100); err != nil {
		return nil, err
	}
	if cfg.DBCacheSizeKB, err = getEnvInt("DB_CACHE_SIZE_KB", 64000); err != nil {
		return nil, err
	}

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return nil, fmt.Errorf("API_PORT must be between 1 and 65535")
	}
	if cfg.APIPortMax < cfg.APIPort {
		cfg.APIPortMax = cfg.APIPort
	}
	if cfg.DBCacheSizeKB <= 0 {
		return nil, fmt.Errorf("DB_CACHE_SIZE_KB must be greater than 0")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}
