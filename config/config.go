// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr        string
	LogLevel        string
	ServiceName     string
	ShutdownTimeout time.Duration
	SeedData        bool

	// APIKey enables the Gemini assistant; empty disables it.
	APIKey           string
	DescriptionModel string
	ForecastModel    string
	SummaryModel     string

	// JournalDriver is memory, none, postgres, mysql or sqlite.
	JournalDriver string
	JournalDSN    string

	// OTLPEndpoint is the collector address; empty disables export.
	OTLPEndpoint string
}

// Load reads the environment, applying defaults for unset variables.
func Load() (Config, error) {
	c := Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8082"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ServiceName:      getEnv("SERVICE_NAME", "inventory-dashboard"),
		APIKey:           getEnv("API_KEY", os.Getenv("GEMINI_API_KEY")),
		DescriptionModel: getEnv("DESCRIPTION_MODEL", "gemini-2.5-flash"),
		ForecastModel:    getEnv("FORECAST_MODEL", "gemini-2.5-pro"),
		SummaryModel:     getEnv("SUMMARY_MODEL", "gemini-2.5-flash"),
		JournalDriver:    getEnv("JOURNAL_DRIVER", "memory"),
		JournalDSN:       os.Getenv("JOURNAL_DSN"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if c.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("config: SHUTDOWN_TIMEOUT: %w", err)
	}
	if c.SeedData, err = strconv.ParseBool(getEnv("SEED_DATA", "true")); err != nil {
		return Config{}, fmt.Errorf("config: SEED_DATA: %w", err)
	}

	switch c.JournalDriver {
	case "memory", "none":
	case "postgres", "mysql", "sqlite":
		if c.JournalDSN == "" {
			return Config{}, fmt.Errorf("config: JOURNAL_DSN is required for journal driver %q", c.JournalDriver)
		}
	default:
		return Config{}, fmt.Errorf("config: unknown JOURNAL_DRIVER %q", c.JournalDriver)
	}
	return c, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
