package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	OutputDir  string
	LogLevel   string
	LogFormat  string
	CensusYear int

	// MetricsTextfile is where the Prometheus registry is written after a run.
	// Empty disables the export.
	MetricsTextfile string

	// Kafka publishing of cleaned rows. Empty KafkaBrokers disables it.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is honored but never overrides the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	censusYear, err := strconv.Atoi(sharedcfg.EnvOrDefault("CENSUS_YEAR", "2021"))
	if err != nil || censusYear <= 0 {
		return nil, errors.New("invalid CENSUS_YEAR")
	}

	kafkaTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("KAFKA_TIMEOUT", "10s"))
	if err != nil || kafkaTimeout <= 0 {
		return nil, errors.New("invalid KAFKA_TIMEOUT")
	}

	cfg := &Config{
		OutputDir:       sharedcfg.EnvOrDefault("OUTPUT_DIR", filepath.Join("data", "processed")),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		CensusYear:      censusYear,
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "cityscan-processed"),
		KafkaTimeout:    kafkaTimeout,
	}
	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// PublishEnabled reports whether cleaned tables are also sent to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// OutputPath returns the default location of an output file, e.g. "pg.csv".
func (c *Config) OutputPath(file string) string {
	return filepath.Join(c.OutputDir, file)
}
