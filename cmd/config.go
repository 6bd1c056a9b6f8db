// Package cmd holds configuration loading and the composition root that
// wires repositories, services, and handlers for the executables.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the process configuration, loaded from the environment
// with an optional .env file for local development.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	PaymentPendingTTL time.Duration
}

// LoadConfig reads configuration from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
func LoadConfig() (Config, error) {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load(".env")

	config := Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),
	}

	if config.DBUser == "" || config.DBName == "" {
		return Config{}, fmt.Errorf("DB_USER and DB_NAME are required")
	}

	ttl, err := time.ParseDuration(envOr("PAYMENT_PENDING_TTL", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PAYMENT_PENDING_TTL: %w", err)
	}
	config.PaymentPendingTTL = ttl

	return config, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
