// Package config loads service settings from an optional YAML file, with
// environment variables taking precedence over file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	Port             string `yaml:"port"`
	DatabaseURL      string `yaml:"database_url"`
	DatabaseUser     string `yaml:"database_user"`
	DatabasePassword string `yaml:"database_password"`
	DatabaseName     string `yaml:"database_name"`
	RunLogDSN        string `yaml:"run_log_dsn"`
	ImportBaseDir    string `yaml:"import_base_dir"`
	BatchSize        int    `yaml:"batch_size"`
	VerifySampleSize int    `yaml:"verify_sample_size"`
	BodyLimit        string `yaml:"body_limit"`
	OTLPEndpoint     string `yaml:"otlp_endpoint"`
	ServiceName      string `yaml:"service_name"`
}

func defaults() Config {
	return Config{
		Port:             "8080",
		ImportBaseDir:    ".",
		BatchSize:        1000,
		VerifySampleSize: 5,
		BodyLimit:        "10M",
		ServiceName:      "tamperproof-users",
	}
}

// Load reads CONFIG_FILE when set, then applies environment overrides.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := defaults()

	if path := getenv("CONFIG_FILE"); path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = getEnv(getenv, "PORT", cfg.Port)
	cfg.DatabaseURL = getEnv(getenv, "DATABASE_URL", cfg.DatabaseURL)
	cfg.DatabaseUser = getEnv(getenv, "DATABASE_USER", cfg.DatabaseUser)
	cfg.DatabasePassword = getEnv(getenv, "DATABASE_PASSWORD", cfg.DatabasePassword)
	cfg.DatabaseName = getEnv(getenv, "DATABASE_NAME", cfg.DatabaseName)
	cfg.RunLogDSN = getEnv(getenv, "RUN_LOG_DSN", cfg.RunLogDSN)
	cfg.ImportBaseDir = getEnv(getenv, "IMPORT_BASE_DIR", cfg.ImportBaseDir)
	cfg.BatchSize = parseIntEnv(getenv, "IMPORT_BATCH_SIZE", cfg.BatchSize)
	cfg.VerifySampleSize = parseIntEnv(getenv, "VERIFY_SAMPLE_SIZE", cfg.VerifySampleSize)
	cfg.BodyLimit = getEnv(getenv, "HTTP_BODY_LIMIT", cfg.BodyLimit)
	cfg.OTLPEndpoint = getEnv(getenv, "OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	cfg.ServiceName = getEnv(getenv, "OTEL_SERVICE_NAME", cfg.ServiceName)

	if cfg.RunLogDSN == "" {
		cfg.RunLogDSN = cfg.DatabaseURL
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.VerifySampleSize < 0 {
		return fmt.Errorf("verify sample size must not be negative, got %d", c.VerifySampleSize)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(getenv func(string) string, key, fallback string) string {
	value := getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func parseIntEnv(getenv func(string) string, key string, fallback int) int {
	raw := getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
