// Package config loads server configuration from environment variables,
// an optional .env file and an optional YAML criteria profile.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/invoicematch/internal/matching"
)

// Config represents the server configuration.
type Config struct {
	Port         int
	DBPath       string
	CriteriaPath string
	LogLevel     string
	LogFormat    string

	// Criteria is the default matching profile, loaded from CriteriaPath
	// over matching.DefaultCriteria().
	Criteria matching.Criteria
}

// Load loads configuration from environment variables.
// It loads .env from the current directory if present, or the given file.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	port, err := parseIntEnv("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg := &Config{
		Port:         port,
		DBPath:       getEnvOrDefault("DB_PATH", "./data/invoicematch.db"),
		CriteriaPath: os.Getenv("CRITERIA_PATH"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
		Criteria:     matching.DefaultCriteria(),
	}

	if cfg.CriteriaPath != "" {
		criteria, err := LoadCriteria(cfg.CriteriaPath)
		if err != nil {
			return nil, err
		}
		cfg.Criteria = criteria
	}

	return cfg, nil
}

// LoadCriteria decodes a YAML criteria profile over the defaults, so a
// profile only needs the fields it changes.
func LoadCriteria(path string) (matching.Criteria, error) {
	criteria := matching.DefaultCriteria()

	data, err := os.ReadFile(path)
	if err != nil {
		return criteria, fmt.Errorf("failed to read criteria profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &criteria); err != nil {
		return criteria, fmt.Errorf("failed to parse criteria profile %s: %w", path, err)
	}
	if err := criteria.Validate(); err != nil {
		return criteria, fmt.Errorf("criteria profile %s: %w", path, err)
	}
	return criteria, nil
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n <= 0 || n > 65535 {
		return 0, errors.New("out of range")
	}
	return n, nil
}
