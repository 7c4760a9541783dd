package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr      string
	ShutdownTimeout time.Duration

	// Storage
	StorageDriver string // "memory" or "postgres"
	DatabaseURL   string

	// HTTP middleware
	CORSOrigins  string // Comma-separated allowed origins
	RateLimitMax int    // Requests per minute per IP, 0 disables the limiter
	RedisURL     string // Rate limiter storage, in-process when empty

	// Logging
	LogLevel  string
	LogFormat string

	// Events
	KafkaBrokers []string
	KafkaTopic   string

	// Risk
	KeywordsFile            string
	StrictStatusTransitions bool
	DefaultRadiusKm         float64

	// Archiver
	ArchiveAfter    time.Duration // 0 disables the archiver
	ArchiveInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	archiveAfter, err := parseDuration("ARCHIVE_AFTER", "0s")
	if err != nil {
		return nil, err
	}
	archiveInterval, err := parseDuration("ARCHIVE_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}

	rateLimitMax, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100"))
	if err != nil || rateLimitMax < 0 {
		return nil, errors.New("invalid RATE_LIMIT_MAX")
	}

	radius, err := strconv.ParseFloat(getEnv("DEFAULT_RADIUS_KM", "10"), 64)
	if err != nil || radius <= 0 {
		return nil, errors.New("invalid DEFAULT_RADIUS_KM")
	}

	strict, err := parseBool("STRICT_STATUS_TRANSITIONS")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":5000"),
		ShutdownTimeout: shutdownTimeout,
		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/rumorwatch?sslmode=disable"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		RateLimitMax:    rateLimitMax,
		RedisURL:        getEnv("REDIS_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		KafkaBrokers:    parseList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "scored-reports"),
		KeywordsFile:    getEnv("KEYWORDS_FILE", "keywords.yaml"),

		StrictStatusTransitions: strict,
		DefaultRadiusKm:         radius,

		ArchiveAfter:    archiveAfter,
		ArchiveInterval: archiveInterval,
	}

	if cfg.StorageDriver != DriverMemory && cfg.StorageDriver != DriverPostgres {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverPostgres && cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres driver")
	}
	if cfg.ArchiveAfter < 0 {
		return nil, errors.New("invalid ARCHIVE_AFTER")
	}
	if cfg.ArchiveInterval <= 0 {
		return nil, errors.New("invalid ARCHIVE_INTERVAL")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseBool(key string) (bool, error) {
	v := getEnv(key, "false")
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return b, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// EventsEnabled reports whether scored reports are published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaTopic != ""
}

// ArchiverEnabled reports whether the archiver job should run.
func (c *Config) ArchiverEnabled() bool {
	return c.ArchiveAfter > 0
}
